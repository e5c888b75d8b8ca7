package analyser

import (
	"github.com/vk/cellan/internal/ast"
)

// helperKinds are the operators most target languages lack as built-ins, so
// generated code has to carry a helper function for them.
var helperKinds = map[ast.Kind]bool{
	ast.Eq:    true,
	ast.Neq:   true,
	ast.Lt:    true,
	ast.Leq:   true,
	ast.Gt:    true,
	ast.Geq:   true,
	ast.And:   true,
	ast.Or:    true,
	ast.Xor:   true,
	ast.Not:   true,
	ast.Min:   true,
	ast.Max:   true,
	ast.Sec:   true,
	ast.Csc:   true,
	ast.Cot:   true,
	ast.Sech:  true,
	ast.Csch:  true,
	ast.Coth:  true,
	ast.Asec:  true,
	ast.Acsc:  true,
	ast.Acot:  true,
	ast.Asech: true,
	ast.Acsch: true,
	ast.Acoth: true,
}

// scanHelpers records which helper operators the ordered equations use.
func (a *analysis) scanHelpers() {
	a.needs = make(map[ast.Kind]bool)
	for _, b := range a.ordered {
		for _, eq := range b.eqs {
			ast.Walk(eq.root, func(n *ast.Node) bool {
				if helperKinds[n.Kind] {
					a.needs[n.Kind] = true
				}
				return true
			})
		}
	}
	a.logger.Debug("Scanned helper functions.", "needed", len(a.needs))
}
