package models

import "strings"

// AnnotationType tags which kind of annotation slot an Argument occupies.
type AnnotationType int

const (
	AnnotationReturn AnnotationType = iota
	AnnotationPosOnlyArg
	AnnotationArg
	AnnotationVararg
	AnnotationKwOnlyArg
	AnnotationKwarg
)

func (t AnnotationType) String() string {
	switch t {
	case AnnotationReturn:
		return "return"
	case AnnotationPosOnlyArg:
		return "posonlyarg"
	case AnnotationArg:
		return "arg"
	case AnnotationVararg:
		return "vararg"
	case AnnotationKwOnlyArg:
		return "kwonlyarg"
	case AnnotationKwarg:
		return "kwarg"
	default:
		return "unknown"
	}
}

// FunctionType captures the visibility convention encoded in a function's name.
type FunctionType int

const (
	FunctionPublic FunctionType = iota
	FunctionProtected
	FunctionPrivate
	FunctionSpecial
)

func (t FunctionType) String() string {
	switch t {
	case FunctionPublic:
		return "public"
	case FunctionProtected:
		return "protected"
	case FunctionPrivate:
		return "private"
	case FunctionSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// FunctionTypeFromName derives the FunctionType from a function's name.
//
// Priority order:
//  1. Special: name prefixed & suffixed by "__"
//  2. Private: name prefixed by "__"
//  3. Protected: name prefixed by "_"
//  4. Public: everything else
func FunctionTypeFromName(name string) FunctionType {
	switch {
	case strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__"):
		return FunctionSpecial
	case strings.HasPrefix(name, "__"):
		return FunctionPrivate
	case strings.HasPrefix(name, "_"):
		return FunctionProtected
	default:
		return FunctionPublic
	}
}

// ClassDecoratorType identifies a method decorated with @classmethod or
// @staticmethod. Only exact bare-name decorators count; call expressions and
// attribute accesses are never recognized for this purpose.
type ClassDecoratorType int

const (
	ClassDecoratorNone ClassDecoratorType = iota
	ClassDecoratorClassmethod
	ClassDecoratorStaticmethod
)

func (t ClassDecoratorType) String() string {
	switch t {
	case ClassDecoratorClassmethod:
		return "classmethod"
	case ClassDecoratorStaticmethod:
		return "staticmethod"
	default:
		return "none"
	}
}

// DecoratorKind discriminates the structural shape of a decorator expression.
type DecoratorKind int

const (
	DecoratorName DecoratorKind = iota
	DecoratorAttribute
	DecoratorCall
	DecoratorUnknown
)

// Decorator is the structural view of one decorator expression: a bare name
// (`@overload`), an attribute access (`@typing.overload`, where only the final
// attribute is kept), a call wrapping either (`@overload()`), or an
// unrecognized shape.
type Decorator struct {
	Kind  DecoratorKind
	Name  string     // final identifier for Name and Attribute shapes
	Inner *Decorator // called expression for the Call shape
}

// Argument represents one annotation slot of a function: a parameter or, under
// the reserved name "return", the return position. Line is 1-based, Col is a
// 0-based byte offset; both are carried only so diagnostics can point at the
// slot.
type Argument struct {
	Name           string
	Line           int
	Col            int
	AnnotationType AnnotationType

	// HasTypeAnnotation is true if the slot is annotated either way; it is
	// always the disjunction of the two style flags below.
	HasTypeAnnotation    bool
	HasInlineAnnotation  bool
	HasCommentAnnotation bool
}

// Function represents a function definition and its relevant metadata.
//
// Python differentiates between functions and methods, but for the purposes
// of this tool both are modeled as Function, with IsMethod recording whether
// the definition sits directly inside a class body.
type Function struct {
	Name string
	Line int
	Col  int

	FunctionType       FunctionType
	IsMethod           bool
	ClassDecoratorType ClassDecoratorType
	IsReturnAnnotated  bool

	// IsClassDecorated is true for methods whose enclosing class carries
	// decorators of its own (dataclasses and the like).
	IsClassDecorated bool

	// HasCommentAnnotation is true when a function-level legacy type comment
	// is attached to the definition.
	HasCommentAnnotation bool

	// HasOnlyNoneReturns is true when every explicit return in the direct
	// body returns nothing or None; vacuously true for a body with no
	// returns.
	HasOnlyNoneReturns bool

	IsNested   bool
	Decorators []Decorator

	// Arguments holds the annotation slots in declaration order, always
	// terminated by exactly one slot named "return".
	Arguments []*Argument
}

// ReturnArgument returns the synthetic trailing return slot.
func (f *Function) ReturnArgument() *Argument {
	return f.Arguments[len(f.Arguments)-1]
}

// IsFullyAnnotated checks that every slot, the return included, is annotated.
func (f *Function) IsFullyAnnotated() bool {
	for _, arg := range f.Arguments {
		if !arg.HasTypeAnnotation {
			return false
		}
	}
	return true
}

// IsDynamicallyTyped reports whether the function completely lacks hints.
func (f *Function) IsDynamicallyTyped() bool {
	for _, arg := range f.Arguments {
		if arg.HasTypeAnnotation {
			return false
		}
	}
	return true
}

// MissedAnnotations returns the slots with missing annotations, in
// declaration order.
func (f *Function) MissedAnnotations() []*Argument {
	var missed []*Argument
	for _, arg := range f.Arguments {
		if !arg.HasTypeAnnotation {
			missed = append(missed, arg)
		}
	}
	return missed
}

// AnnotatedArguments returns the slots that carry an annotation, in
// declaration order.
func (f *Function) AnnotatedArguments() []*Argument {
	var annotated []*Argument
	for _, arg := range f.Arguments {
		if arg.HasTypeAnnotation {
			annotated = append(annotated, arg)
		}
	}
	return annotated
}

// HasDecorator determines whether the function matches any of the provided
// decorator names.
//
// Matching is structural: a bare name matches on the name itself, a
// module-qualified attribute matches on its final attribute (the qualifying
// prefix is ignored, so `typing.overload` and `overload` are treated
// identically), and a call recurses into its callee. Only the first decorator
// in the decorator list is inspected; deeper imports (`a.b.name`) are not
// explicitly supported.
func (f *Function) HasDecorator(names map[string]bool) bool {
	for _, decorator := range f.Decorators {
		return decoratorMatches(decorator, names)
	}
	return false
}

func decoratorMatches(d Decorator, names map[string]bool) bool {
	switch d.Kind {
	case DecoratorName, DecoratorAttribute:
		return names[d.Name]
	case DecoratorCall:
		if d.Inner != nil {
			return decoratorMatches(*d.Inner, names)
		}
	}
	return false
}

// ClassDecoratorTypeFrom inspects a method's decorators for bare-name
// @classmethod or @staticmethod markers. All other decorator shapes are
// ignored, matching Python's own resolution of these builtins.
func ClassDecoratorTypeFrom(decorators []Decorator) ClassDecoratorType {
	names := make(map[string]bool, len(decorators))
	for _, d := range decorators {
		if d.Kind == DecoratorName {
			names[d.Name] = true
		}
	}

	switch {
	case names["classmethod"]:
		return ClassDecoratorClassmethod
	case names["staticmethod"]:
		return ClassDecoratorStaticmethod
	default:
		return ClassDecoratorNone
	}
}
