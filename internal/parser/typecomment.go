package parser

import (
	"fmt"
	"strings"
)

// TypeHint is one slot of a parsed function-level type comment. An Ellipsis
// slot is the literal `...` placeholder, which carries no annotation for the
// position it pairs with.
type TypeHint struct {
	Ellipsis bool
	Text     string
}

// TypeCommentSignature is the resolved form of a legacy function-level type
// comment such as `(int, *str) -> bool`. A syntactically valid comment always
// specifies a return type.
type TypeCommentSignature struct {
	ArgHints   []TypeHint
	ReturnHint string
}

// ParseTypeComment resolves the payload of a function-level type comment into
// a signature. A payload that does not parse is an error; there is no silent
// fallback, the caller treats it as fatal for the function being modeled.
func ParseTypeComment(payload string) (TypeCommentSignature, error) {
	var sig TypeCommentSignature

	s := strings.TrimSpace(payload)
	if !strings.HasPrefix(s, "(") {
		return sig, fmt.Errorf("invalid type comment %q: missing argument list", payload)
	}

	closing := matchParen(s)
	if closing < 0 {
		return sig, fmt.Errorf("invalid type comment %q: unbalanced parentheses", payload)
	}

	rest := strings.TrimSpace(s[closing+1:])
	ret, ok := strings.CutPrefix(rest, "->")
	if !ok {
		return sig, fmt.Errorf("invalid type comment %q: missing return type", payload)
	}
	ret = strings.TrimSpace(ret)
	if ret == "" {
		return sig, fmt.Errorf("invalid type comment %q: missing return type", payload)
	}
	sig.ReturnHint = ret

	for _, slot := range splitTopLevel(s[1:closing]) {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		if slot == "..." {
			sig.ArgHints = append(sig.ArgHints, TypeHint{Ellipsis: true})
			continue
		}
		sig.ArgHints = append(sig.ArgHints, TypeHint{Text: slot})
	}

	return sig, nil
}

// matchParen returns the index of the ')' closing the '(' at index 0, or -1.
func matchParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && s[i] == ')' {
				return i
			}
		case '\'', '"':
			i = skipString(s, i)
		}
	}
	return -1
}

// splitTopLevel splits on commas that sit outside any bracket or string, so
// nested hints like Dict[str, int] stay whole.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\'', '"':
			i = skipString(s, i)
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// skipString advances past a quoted forward reference starting at i,
// returning the index of its closing quote (or the end of input).
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}
