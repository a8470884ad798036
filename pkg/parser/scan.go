package parser

import "strings"

// nesting follows quote and bracket state while a statement is walked byte
// by byte. All delimiters it cares about are ASCII, so byte offsets are safe
// to slice with even when the text contains multi-byte runes.
type nesting struct {
	// angles enables <...> tracking. Default expressions only track braces.
	angles bool

	angle int
	brace int
	quote byte
}

// step consumes c and reports whether c sits outside quotes and outside any
// tracked brackets.
func (n *nesting) step(c byte) bool {
	if n.quote != 0 {
		if c == n.quote {
			n.quote = 0
		}
		return false
	}

	switch c {
	case '\'', '"':
		n.quote = c
		return false
	case '{':
		n.brace++
	case '}':
		n.brace--
	case '<':
		if n.angles {
			n.angle++
		}
	case '>':
		if n.angles {
			n.angle--
		}
	}

	return n.angle == 0 && n.brace == 0
}

// scanUntil returns the offset of the first top-level byte for which stop
// returns true, or len(s) when there is none.
func scanUntil(s string, n nesting, stop func(i int) bool) int {
	for i := 0; i < len(s); i++ {
		if n.step(s[i]) && stop(i) {
			return i
		}
	}

	return len(s)
}

// clauseBoundary builds a stop function matching ';' or a space that starts
// one of the given keywords.
func clauseBoundary(s string, keywords ...string) func(int) bool {
	return func(i int) bool {
		switch s[i] {
		case ';':
			return true
		case ' ':
			for _, kw := range keywords {
				if strings.HasPrefix(s[i:], kw) {
					return true
				}
			}
		}

		return false
	}
}

func isUnionBar(s string, i int) bool {
	return s[i] == '|' && i > 0 && i < len(s)-1 && s[i-1] == ' ' && s[i+1] == ' '
}

// indexFold is strings.Index with ASCII case folding that keeps byte offsets
// of the original string.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}

	return -1
}

// firstField returns the first whitespace separated token of s, or "".
func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}

	return ""
}

// ExtractParenthesized returns the text between the first '(' in text and
// its matching ')'. Nested parentheses are balanced; an unbalanced input
// yields false.
//
// Example:
//
//	ExtractParenthesized("SIGNIN (SELECT * FROM user WHERE (a = 1)) WITH JWT")
//	// "SELECT * FROM user WHERE (a = 1)", true
func ExtractParenthesized(text string) (string, bool) {
	start := strings.IndexByte(text, '(')
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[start+1 : i], true
			}
		}
	}

	return "", false
}
