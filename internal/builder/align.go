package builder

import (
	"typelint/internal/models"
	"typelint/internal/parser"
)

// alignTypeComment marks the slots annotated by a function-level type
// comment.
//
// Legacy comments address parameters by position and conventionally omit the
// implicit receiver, so `def bar(self, a):  # type: (int) -> int` must lint
// the same as `def bar(self, a: int) -> int:`. When the function is a method
// (and not a staticmethod) and the comment hints fewer slots than there are
// parameters, a placeholder is injected in front so the first real hint lands
// on the first real parameter instead of the receiver.
//
// Pairing is positional and stops at the shorter sequence; an ellipsis slot
// contributes no annotation. The return slot is always marked: a
// function-level comment is only syntactically valid with a return type.
func alignTypeComment(fn *models.Function, sig parser.TypeCommentSignature) {
	hints := sig.ArgHints
	params := fn.Arguments[:len(fn.Arguments)-1]

	if fn.IsMethod &&
		fn.ClassDecoratorType != models.ClassDecoratorStaticmethod &&
		len(hints) < len(params) {
		hints = append([]parser.TypeHint{{Ellipsis: true}}, hints...)
	}

	for i, hint := range hints {
		if i >= len(params) {
			break
		}
		if hint.Ellipsis {
			continue
		}
		params[i].HasTypeAnnotation = true
		params[i].HasCommentAnnotation = true
	}

	ret := fn.ReturnArgument()
	ret.HasTypeAnnotation = true
	ret.HasCommentAnnotation = true
	fn.IsReturnAnnotated = true
}
