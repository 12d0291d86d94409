package diag

import "fmt"

// Code identifies one diagnostic in the ANN taxonomy.
type Code string

const (
	// ANN0xx: function arguments
	ArgMissing    Code = "ANN001"
	VarargMissing Code = "ANN002"
	KwargMissing  Code = "ANN003"

	// ANN1xx: method receivers
	SelfMissing Code = "ANN101"
	ClsMissing  Code = "ANN102"

	// ANN2xx: return values
	PublicReturnMissing       Code = "ANN201"
	ProtectedReturnMissing    Code = "ANN202"
	PrivateReturnMissing      Code = "ANN203"
	SpecialReturnMissing      Code = "ANN204"
	StaticmethodReturnMissing Code = "ANN205"
	ClassmethodReturnMissing  Code = "ANN206"

	// ANN3xx: annotation style
	MixedHintStyles Code = "ANN301"
)

// All returns every diagnostic code in a stable listing order.
func All() []Code {
	return []Code{
		ArgMissing,
		VarargMissing,
		KwargMissing,
		SelfMissing,
		ClsMissing,
		PublicReturnMissing,
		ProtectedReturnMissing,
		PrivateReturnMissing,
		SpecialReturnMissing,
		StaticmethodReturnMissing,
		ClassmethodReturnMissing,
		MixedHintStyles,
	}
}

// Message renders the human-readable message for the code. The slot name is
// only interpolated for the ANN00x argument codes; the remaining codes have
// fixed text.
func (c Code) Message(argname string) string {
	switch c {
	case ArgMissing:
		return fmt.Sprintf("Missing type annotation for function argument '%s'", argname)
	case VarargMissing:
		return fmt.Sprintf("Missing type annotation for *%s", argname)
	case KwargMissing:
		return fmt.Sprintf("Missing type annotation for **%s", argname)
	case SelfMissing:
		return "Missing type annotation for self in method"
	case ClsMissing:
		return "Missing type annotation for cls in classmethod"
	case PublicReturnMissing:
		return "Missing return type annotation for public function"
	case ProtectedReturnMissing:
		return "Missing return type annotation for protected function"
	case PrivateReturnMissing:
		return "Missing return type annotation for secret function"
	case SpecialReturnMissing:
		return "Missing return type annotation for special method"
	case StaticmethodReturnMissing:
		return "Missing return type annotation for staticmethod"
	case ClassmethodReturnMissing:
		return "Missing return type annotation for classmethod"
	case MixedHintStyles:
		return "PEP 484 disallows both type annotations and type comments"
	default:
		return fmt.Sprintf("Unknown diagnostic %s", string(c))
	}
}

// Template returns the message with a generic placeholder, for listings.
func (c Code) Template() string {
	switch c {
	case ArgMissing, VarargMissing, KwargMissing:
		return c.Message("<name>")
	default:
		return c.Message("")
	}
}

// Diagnostic is one emitted finding, bound to a source location. Line is
// 1-based and Col is a 0-based byte offset, following the AST convention;
// renderers are expected to shift the column for display.
type Diagnostic struct {
	Path    string
	Line    int
	Col     int
	Code    Code
	Message string
}

// New builds a Diagnostic for the given code, interpolating the slot name
// into the message.
func New(path string, line, col int, code Code, argname string) Diagnostic {
	return Diagnostic{
		Path:    path,
		Line:    line,
		Col:     col,
		Code:    code,
		Message: code.Message(argname),
	}
}
