package analyzer

import (
	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

// InferenceMap tracks the computed type of each visited AST node.
type InferenceMap map[ast.Node]ty.Ty

func (m InferenceMap) set(node ast.Node, t ty.Ty) {
	if node == nil || t == nil {
		return
	}
	m[node] = t
}

// Get retrieves the recorded type for a node.
func (m InferenceMap) Get(node ast.Node) (ty.Ty, bool) {
	t, ok := m[node]
	return t, ok
}
