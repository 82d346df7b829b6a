// Package analyzers provides all custom static analyzers for feedback-curator.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/feedback-curator/tools/curator-lint/analyzers/clocknow"
	"github.com/ersonp/feedback-curator/tools/curator-lint/analyzers/storeloop"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		clocknow.Analyzer,
		storeloop.Analyzer,
	}
}
