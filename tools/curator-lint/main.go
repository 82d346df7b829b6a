// curator-lint is a custom static analyzer for feedback-curator code patterns.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/feedback-curator/tools/curator-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
