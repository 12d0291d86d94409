package builder

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// hasValuedReturn scans a function body for a return statement carrying a
// value other than the literal None. Nested function and class definitions
// are not descended into; their returns belong to their own Function model.
func hasValuedReturn(node *tree_sitter.Node) bool {
	switch node.Kind() {
	case nodeFunctionDefinition, nodeClassDefinition:
		return false
	case nodeReturnStatement:
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == nodeComment {
				continue
			}
			if !isNoneLiteral(child) {
				return true
			}
		}
		return false
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		if hasValuedReturn(node.NamedChild(i)) {
			return true
		}
	}
	return false
}

// isNoneLiteral reports whether an expression is the literal None, unwrapping
// any number of surrounding parentheses.
func isNoneLiteral(node *tree_sitter.Node) bool {
	for node.Kind() == nodeParenthesized {
		var inner *tree_sitter.Node
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if child := node.NamedChild(i); child.Kind() != nodeComment {
				inner = child
				break
			}
		}
		if inner == nil {
			return false
		}
		node = inner
	}
	return node.Kind() == nodeNone
}
