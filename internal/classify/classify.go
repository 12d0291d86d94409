// Package classify maps a missing annotation position to its diagnostic code.
//
// Both classifiers are pure decision tables over their discrete inputs: the
// same tuple always yields the same code, there is no hidden state, and every
// input combination produces exactly one code. Callers guarantee the position
// is actually missing an annotation; no existence checks happen here.
package classify

import (
	"typelint/internal/diag"
	"typelint/internal/models"
)

// ReturnCode classifies a missing return annotation.
//
// Decorated methods (@classmethod, @staticmethod) take priority over the
// name-derived function type.
func ReturnCode(
	isMethod bool,
	classDecorator models.ClassDecoratorType,
	functionType models.FunctionType,
) diag.Code {
	if isMethod {
		switch classDecorator {
		case models.ClassDecoratorClassmethod:
			return diag.ClassmethodReturnMissing
		case models.ClassDecoratorStaticmethod:
			return diag.StaticmethodReturnMissing
		}
	}

	switch functionType {
	case models.FunctionSpecial:
		return diag.SpecialReturnMissing
	case models.FunctionPrivate:
		return diag.PrivateReturnMissing
	case models.FunctionProtected:
		return diag.ProtectedReturnMissing
	default:
		return diag.PublicReturnMissing
	}
}

// ArgumentCode classifies a missing argument annotation.
//
// The first argument of a non-static method is the implicit receiver and maps
// to the receiver codes; everything else classifies by slot kind, with
// positional-only, ordinary and keyword-only slots collapsing into ANN001.
func ArgumentCode(
	isMethod bool,
	isFirstArg bool,
	classDecorator models.ClassDecoratorType,
	annotationType models.AnnotationType,
) diag.Code {
	if isMethod && isFirstArg {
		if classDecorator == models.ClassDecoratorClassmethod {
			return diag.ClsMissing
		}
		if classDecorator != models.ClassDecoratorStaticmethod {
			return diag.SelfMissing
		}
	}

	switch annotationType {
	case models.AnnotationKwarg:
		return diag.KwargMissing
	case models.AnnotationVararg:
		return diag.VarargMissing
	default:
		return diag.ArgMissing
	}
}
