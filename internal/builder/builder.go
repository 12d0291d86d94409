// Package builder walks a parsed Python file and produces the Function and
// Argument models consumed by the checker. One pass over the tree yields all
// function definitions in source order; nothing built here outlives the file.
package builder

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"typelint/internal/models"
	"typelint/internal/parser"
)

// tree-sitter-python node kinds the builder cares about.
const (
	nodeFunctionDefinition    = "function_definition"
	nodeClassDefinition       = "class_definition"
	nodeDecoratedDefinition   = "decorated_definition"
	nodeDecorator             = "decorator"
	nodeIdentifier            = "identifier"
	nodeAttribute             = "attribute"
	nodeCall                  = "call"
	nodeTypedParameter        = "typed_parameter"
	nodeDefaultParameter      = "default_parameter"
	nodeTypedDefaultParameter = "typed_default_parameter"
	nodeListSplat             = "list_splat_pattern"
	nodeDictSplat             = "dictionary_splat_pattern"
	nodeKeywordSeparator      = "keyword_separator"
	nodePositionalSeparator   = "positional_separator"
	nodeReturnStatement       = "return_statement"
	nodeNone                  = "none"
	nodeParenthesized         = "parenthesized_expression"
	nodeComment               = "comment"
)

type parentKind int

const (
	parentNone parentKind = iota
	parentFunction
	parentClass
)

// walkContext describes the lexical surroundings of the node being visited:
// the nearest enclosing definition (function or class, intermediate
// statements like if/try do not count) and whether an enclosing class was
// itself decorated.
type walkContext struct {
	parent         parentKind
	classDecorated bool
}

type collector struct {
	file     *parser.File
	comments []parser.Comment
	funcs    []*models.Function
	err      error
}

// Collect builds a Function for every definition in the file, in source
// order. A function-level type comment that fails to resolve aborts the
// collection with an error.
func Collect(file *parser.File) ([]*models.Function, error) {
	c := &collector{file: file, comments: file.Comments()}
	c.walk(file.Root(), walkContext{})
	if c.err != nil {
		return nil, c.err
	}
	return c.funcs, nil
}

func (c *collector) walk(node *tree_sitter.Node, ctx walkContext) {
	if c.err != nil {
		return
	}

	switch node.Kind() {
	case nodeDecoratedDefinition:
		def := node.ChildByFieldName("definition")
		if def == nil {
			return
		}
		var decorators []*tree_sitter.Node
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if child := node.NamedChild(i); child.Kind() == nodeDecorator {
				decorators = append(decorators, child)
			}
		}
		c.definition(def, decorators, ctx)
	case nodeFunctionDefinition, nodeClassDefinition:
		c.definition(node, nil, ctx)
	default:
		for i := uint(0); i < node.NamedChildCount(); i++ {
			c.walk(node.NamedChild(i), ctx)
		}
	}
}

// definition handles one (possibly decorated) function or class definition.
// Functions are recorded before their body is walked, so nested definitions
// follow their parent in the output.
func (c *collector) definition(def *tree_sitter.Node, decorators []*tree_sitter.Node, ctx walkContext) {
	switch def.Kind() {
	case nodeFunctionDefinition:
		fn, err := c.build(def, decorators, ctx)
		if err != nil {
			c.err = err
			return
		}
		c.funcs = append(c.funcs, fn)
		if body := def.ChildByFieldName("body"); body != nil {
			c.walk(body, walkContext{parent: parentFunction})
		}
	case nodeClassDefinition:
		if body := def.ChildByFieldName("body"); body != nil {
			c.walk(body, walkContext{parent: parentClass, classDecorated: len(decorators) > 0})
		}
	}
}

// build produces the Function model for one function_definition node.
func (c *collector) build(node *tree_sitter.Node, decoratorNodes []*tree_sitter.Node, ctx walkContext) (*models.Function, error) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, fmt.Errorf("%s: function definition without a name node", c.file.Path)
	}
	name := c.file.Text(nameNode)
	start := node.StartPosition()

	decorators := make([]models.Decorator, 0, len(decoratorNodes))
	for _, d := range decoratorNodes {
		decorators = append(decorators, c.toDecorator(decoratorExpr(d)))
	}

	fn := &models.Function{
		Name:               name,
		Line:               int(start.Row) + 1,
		Col:                int(start.Column),
		FunctionType:       models.FunctionTypeFromName(name),
		IsMethod:           ctx.parent == parentClass,
		IsClassDecorated:   ctx.parent == parentClass && ctx.classDecorated,
		IsNested:           ctx.parent == parentFunction,
		HasOnlyNoneReturns: true,
		Decorators:         decorators,
	}
	if fn.IsMethod {
		fn.ClassDecoratorType = models.ClassDecoratorTypeFrom(decorators)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Arguments = c.buildArguments(params)
	}

	body := node.ChildByFieldName("body")
	first := firstStatement(body)

	line, col := c.colonSeeker(node, first)
	ret := &models.Argument{
		Name:           "return",
		Line:           line,
		Col:            col,
		AnnotationType: models.AnnotationReturn,
	}
	if node.ChildByFieldName("return_type") != nil {
		ret.HasTypeAnnotation = true
		ret.HasInlineAnnotation = true
		fn.IsReturnAnnotated = true
	}
	fn.Arguments = append(fn.Arguments, ret)

	if payload, ok := c.functionTypeComment(node, first); ok {
		fn.HasCommentAnnotation = true
		sig, err := parser.ParseTypeComment(payload)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: function %s: %w", c.file.Path, fn.Line, name, err)
		}
		alignTypeComment(fn, sig)
	}

	if body != nil {
		fn.HasOnlyNoneReturns = !hasValuedReturn(body)
	}

	return fn, nil
}

// toDecorator maps a decorator expression node onto the structural union the
// matcher works with. For attribute accesses only the final attribute is
// kept; calls recurse into their callee.
func (c *collector) toDecorator(expr *tree_sitter.Node) models.Decorator {
	if expr == nil {
		return models.Decorator{Kind: models.DecoratorUnknown}
	}
	switch expr.Kind() {
	case nodeIdentifier:
		return models.Decorator{Kind: models.DecoratorName, Name: c.file.Text(expr)}
	case nodeAttribute:
		attr := expr.ChildByFieldName("attribute")
		if attr == nil {
			return models.Decorator{Kind: models.DecoratorUnknown}
		}
		return models.Decorator{Kind: models.DecoratorAttribute, Name: c.file.Text(attr)}
	case nodeCall:
		inner := c.toDecorator(expr.ChildByFieldName("function"))
		return models.Decorator{Kind: models.DecoratorCall, Inner: &inner}
	default:
		return models.Decorator{Kind: models.DecoratorUnknown}
	}
}

// decoratorExpr returns the expression a decorator node wraps (its first
// named child after the '@').
func decoratorExpr(decorator *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < decorator.NamedChildCount(); i++ {
		if child := decorator.NamedChild(i); child.Kind() != nodeComment {
			return child
		}
	}
	return nil
}

// firstStatement returns the first statement of a body block, mirroring the
// AST view where comments are not statements.
func firstStatement(body *tree_sitter.Node) *tree_sitter.Node {
	if body == nil {
		return nil
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		if child := body.NamedChild(i); child.Kind() != nodeComment {
			return child
		}
	}
	return nil
}

// functionTypeComment finds the function-level legacy type comment, if any:
// a `# type: (args) -> ret` comment between the definition header and its
// first body statement.
func (c *collector) functionTypeComment(node, first *tree_sitter.Node) (string, bool) {
	defRow := int(node.StartPosition().Row)
	stmtRow := defRow
	if first != nil {
		stmtRow = int(first.StartPosition().Row)
	}

	for _, cm := range c.comments {
		if cm.Row < defRow || cm.Row > stmtRow {
			continue
		}
		// A comment sharing the first statement's line trails that statement
		// (a nested one-line def, say), unless the statement sits on this
		// definition's own header line.
		if cm.Row == stmtRow && stmtRow != defRow {
			continue
		}
		payload := parser.TypeCommentText(cm.Text)
		if payload != "" && parser.IsSignatureComment(payload) {
			return payload, true
		}
	}
	return "", false
}
