package builder

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"typelint/internal/models"
	"typelint/internal/parser"
)

// buildArguments produces one Argument per parameter in declaration order.
//
// The slot kind follows the separators: parameters before a `/` are
// positional-only, `*args` (or a bare `*`) switches the remainder to
// keyword-only, `**kwargs` is the kwarg slot. The declaration order already
// matches the model's required order, so no reordering happens.
func (c *collector) buildArguments(params *tree_sitter.Node) []*models.Argument {
	var args []*models.Argument
	kind := models.AnnotationArg

	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		switch child.Kind() {
		case nodeComment:
			// Extras inside the parameter list; handled below.
		case nodePositionalSeparator:
			// Everything declared before "/" is positional-only.
			for _, arg := range args {
				arg.AnnotationType = models.AnnotationPosOnlyArg
			}
		case nodeKeywordSeparator:
			kind = models.AnnotationKwOnlyArg
		case nodeListSplat:
			args = append(args, c.argument(identifierOf(child), models.AnnotationVararg, false))
			kind = models.AnnotationKwOnlyArg
		case nodeDictSplat:
			args = append(args, c.argument(identifierOf(child), models.AnnotationKwarg, false))
		case nodeTypedParameter:
			pattern := child.NamedChild(0)
			at := kind
			if pattern != nil {
				switch pattern.Kind() {
				case nodeListSplat:
					at = models.AnnotationVararg
				case nodeDictSplat:
					at = models.AnnotationKwarg
				}
			}
			args = append(args, c.argument(identifierOf(pattern), at, true))
			if at == models.AnnotationVararg {
				kind = models.AnnotationKwOnlyArg
			}
		case nodeIdentifier:
			args = append(args, c.argument(child, kind, false))
		case nodeDefaultParameter:
			args = append(args, c.argument(child.ChildByFieldName("name"), kind, false))
		case nodeTypedDefaultParameter:
			args = append(args, c.argument(child.ChildByFieldName("name"), kind, true))
		}
	}

	c.attachArgumentComments(params, args)
	return args
}

// argument builds one slot from its name node. inline marks a PEP 3107-style
// annotation found directly on the parameter.
func (c *collector) argument(nameNode *tree_sitter.Node, at models.AnnotationType, inline bool) *models.Argument {
	arg := &models.Argument{AnnotationType: at}
	if nameNode != nil {
		arg.Name = c.file.Text(nameNode)
		pos := nameNode.StartPosition()
		arg.Line = int(pos.Row) + 1
		arg.Col = int(pos.Column)
	}
	if inline {
		arg.HasTypeAnnotation = true
		arg.HasInlineAnnotation = true
	}
	return arg
}

// identifierOf unwraps splat patterns (`*args`, `**kwargs`) to the underlying
// identifier; a plain identifier passes through.
func identifierOf(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil || node.Kind() == nodeIdentifier {
		return node
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child.Kind() == nodeIdentifier {
			return child
		}
	}
	return nil
}

// attachArgumentComments marks parameters annotated by per-parameter legacy
// comments: a `# type: X` trailing comment annotates the last parameter
// declared on its line. Function-level signature comments are excluded, as
// is `# type: ignore`.
func (c *collector) attachArgumentComments(params *tree_sitter.Node, args []*models.Argument) {
	start := int(params.StartPosition().Row)
	end := int(params.EndPosition().Row)

	for _, cm := range c.comments {
		if cm.Row < start || cm.Row > end {
			continue
		}
		payload := parser.TypeCommentText(cm.Text)
		if payload == "" || parser.IsSignatureComment(payload) {
			continue
		}
		for i := len(args) - 1; i >= 0; i-- {
			if args[i].Line == cm.Row+1 {
				args[i].HasTypeAnnotation = true
				args[i].HasCommentAnnotation = true
				break
			}
		}
	}
}
