// Package clocknow detects direct time.Now calls where the clock is injected.
package clocknow

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects time.Now() calls. Services take their timestamps from an
// injected clock so tests can pin them; referencing time.Now as the default
// function value is fine, calling it is not.
var Analyzer = &analysis.Analyzer{
	Name:     "clocknow",
	Doc:      "detects direct time.Now() calls where the clock should be injected",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}

		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return
		}

		if ident.Name == "time" && sel.Sel.Name == "Now" {
			pass.Reportf(call.Pos(),
				"time.Now called directly - use the injected clock so tests can pin timestamps")
		}
	})

	return nil, nil
}
