package parser

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Comment is one # comment in the file. Row and Col are 0-based and byte
// oriented; Text excludes the leading '#'.
type Comment struct {
	Row  int
	Col  int
	Text string
}

// Comments collects every comment node in the tree in source order. Reading
// comments from the tree rather than scanning lines means a '#' inside a
// string literal never masquerades as a comment.
func (f *File) Comments() []Comment {
	var comments []Comment
	collectComments(f, f.Root(), &comments)
	return comments
}

func collectComments(f *File, node *tree_sitter.Node, out *[]Comment) {
	if node.Kind() == "comment" {
		start := node.StartPosition()
		*out = append(*out, Comment{
			Row:  int(start.Row),
			Col:  int(start.Column),
			Text: strings.TrimPrefix(f.Text(node), "#"),
		})
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectComments(f, node.Child(i), out)
	}
}

// TypeCommentText extracts the payload of a "# type:" comment. It returns ""
// when the comment is not a type comment, including the "# type: ignore"
// form, which PEP 484 reserves for suppressions rather than hints.
func TypeCommentText(comment string) string {
	trimmed := strings.TrimSpace(comment)
	rest, ok := strings.CutPrefix(trimmed, "type:")
	if !ok {
		return ""
	}

	payload := strings.TrimSpace(rest)
	if payload == "ignore" || strings.HasPrefix(payload, "ignore[") {
		return ""
	}
	return payload
}

// IsSignatureComment reports whether a type-comment payload is the
// function-level `(args) -> ret` form rather than a per-parameter hint.
func IsSignatureComment(payload string) bool {
	return strings.HasPrefix(payload, "(") && strings.Contains(payload, "->")
}
