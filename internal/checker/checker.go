// Package checker drives the per-file diagnostic emission: it applies the
// configured suppressions, tracks the overload-series state, and classifies
// every confirmed missing annotation position.
package checker

import (
	"typelint/internal/builder"
	"typelint/internal/classify"
	"typelint/internal/config"
	"typelint/internal/diag"
	"typelint/internal/models"
	"typelint/internal/parser"
)

// Checker lints one file at a time. It holds only read-only configuration,
// so a single Checker may be shared across goroutines checking different
// files.
type Checker struct {
	cfg config.Config
}

func New(cfg config.Config) *Checker {
	return &Checker{cfg: cfg}
}

// Check builds the function models for the file and emits its diagnostic
// stream: functions in source order, positions within a function in
// declaration order, the return slot last.
func (c *Checker) Check(file *parser.File) ([]diag.Diagnostic, error) {
	functions, err := builder.Collect(file)
	if err != nil {
		return nil, err
	}
	return c.run(file.Path, functions), nil
}

func (c *Checker) run(path string, functions []*models.Function) []diag.Diagnostic {
	var out []diag.Diagnostic

	// Name of the most recent overload-decorated function not yet closed by
	// a same-named plain definition. Scoped to this pass: a new file always
	// starts with a clean slate.
	var pendingOverloadName string

	for _, fn := range functions {
		if fn.IsDynamicallyTyped() {
			if c.cfg.AllowUntypedDefs {
				continue
			}
			if fn.IsNested && c.cfg.AllowUntypedNested {
				continue
			}
		}

		// Dispatch entry points are exempt from annotation requirements
		// entirely.
		if fn.HasDecorator(c.cfg.DispatchDecorators) {
			continue
		}

		// Mixing legacy comments with inline annotations is reported once
		// per function, bound to the function's own position. The scan stops
		// as soon as the mix is confirmed.
		hasComment := fn.HasCommentAnnotation
		hasInline := false
		for _, arg := range fn.AnnotatedArguments() {
			if arg.HasCommentAnnotation {
				hasComment = true
			}
			if arg.HasInlineAnnotation {
				hasInline = true
			}
			if hasComment && hasInline {
				out = append(out, diag.New(path, fn.Line, fn.Col, diag.MixedHintStyles, ""))
				break
			}
		}

		// A definition that closes an overload series is fully specified by
		// convention; its missing positions are not reported. The pending
		// name is deliberately not cleared here.
		if pendingOverloadName == fn.Name {
			continue
		}
		if fn.HasDecorator(c.cfg.OverloadDecorators) {
			pendingOverloadName = fn.Name
		}

		for i, arg := range fn.Arguments {
			if arg.HasTypeAnnotation {
				continue
			}

			if arg.AnnotationType == models.AnnotationReturn {
				if c.cfg.SuppressNoneReturning && fn.HasOnlyNoneReturns {
					continue
				}
				if c.cfg.MypyInitReturn && fn.IsMethod && fn.Name == "__init__" &&
					len(fn.AnnotatedArguments()) > 0 {
					continue
				}
			}

			if arg.Name == "_" && c.cfg.SuppressDummyArgs {
				continue
			}

			code := classifyMissing(fn, arg, i == 0)
			out = append(out, diag.New(path, arg.Line, arg.Col, code, arg.Name))
		}
	}

	return out
}

// classifyMissing dispatches a confirmed missing position to the
// classification tables.
func classifyMissing(fn *models.Function, arg *models.Argument, isFirstArg bool) diag.Code {
	if arg.AnnotationType == models.AnnotationReturn {
		return classify.ReturnCode(fn.IsMethod, fn.ClassDecoratorType, fn.FunctionType)
	}
	return classify.ArgumentCode(fn.IsMethod, isFirstArg, fn.ClassDecoratorType, arg.AnnotationType)
}
