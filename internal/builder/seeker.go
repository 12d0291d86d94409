package builder

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// colonSeeker locates the definition's closing colon, which is where the
// return slot's diagnostic points. Returns a 1-based line and 0-based column.
//
// For a single-line definition the colon sits on the header line between the
// header start and the first body statement. For a multi-line definition it
// sits on the line immediately preceding the first body statement. In both
// cases the last ':' on the line wins, so slice or lambda colons inside
// default-value expressions are skipped; a trailing comment containing a
// colon shifts the result, which is accepted since the position carries no
// semantic weight.
func (c *collector) colonSeeker(node, first *tree_sitter.Node) (int, int) {
	start := node.StartPosition()
	if first == nil {
		return int(start.Row) + 1, int(start.Column)
	}

	defRow := int(start.Row)
	stmtRow := int(first.StartPosition().Row)

	if defRow == stmtRow {
		line := c.file.Lines[defRow]
		lo := int(start.Column)
		hi := int(first.StartPosition().Column)
		if hi > len(line) {
			hi = len(line)
		}
		col := strings.LastIndex(line[lo:hi], ":")
		if col >= 0 {
			col += lo
		}
		return defRow + 1, col
	}

	colonRow := stmtRow - 1
	return colonRow + 1, strings.LastIndex(c.file.Lines[colonRow], ":")
}
