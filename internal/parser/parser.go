// Package parser wraps tree-sitter parsing of Python sources and resolution
// of legacy PEP 484 type comments. Everything downstream consumes the parsed
// File; no other package touches raw source text.
package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// File is one parsed Python source file: the syntax tree plus the raw source
// split into lines. Lines are needed by the colon seeker, which works on
// text the tree does not model precisely.
type File struct {
	Path   string
	Source []byte
	Lines  []string

	tree *tree_sitter.Tree
}

// Parse parses Python source into a File. Source that fails to parse is
// rejected outright; no model building happens for such a file.
func Parse(path string, src []byte) (*File, error) {
	p := tree_sitter.NewParser()
	defer p.Close()

	if err := p.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		return nil, fmt.Errorf("failed to load python grammar: %w", err)
	}

	tree := p.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", path)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("%s: syntax error", path)
	}

	return &File{
		Path:   path,
		Source: src,
		Lines:  splitLines(src),
		tree:   tree,
	}, nil
}

// Root returns the module node of the parsed tree.
func (f *File) Root() *tree_sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text covered by a node.
func (f *File) Text(n *tree_sitter.Node) string {
	return n.Utf8Text(f.Source)
}

// Close releases the underlying tree. The File is unusable afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

func splitLines(src []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, trimCR(src[start:i]))
			start = i + 1
		}
	}
	if start < len(src) {
		lines = append(lines, trimCR(src[start:]))
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func trimCR(line []byte) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}
