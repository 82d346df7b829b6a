// Package storeloop detects per-object store and model calls inside loops.
package storeloop

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects blob writes, deletes and model calls inside loops. Reads
// are looped deliberately (object stores have no batch get), but a loop of
// writes or drafts usually means the caller should persist once or batch.
var Analyzer = &analysis.Analyzer{
	Name:     "storeloop",
	Doc:      "detects blob writes and model calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// externalMethods are method names that indicate external calls.
var externalMethods = map[string]bool{
	// BlobStore interface (mutating)
	"Put":    true,
	"Delete": true,
	// DraftGenerator interface
	"Generate": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if externalMethods[sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"%s called inside loop - persist once or batch outside the loop",
					sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}
