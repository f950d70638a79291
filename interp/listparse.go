package interp

import (
	"fmt"
	"strings"
)

// parseList splits a TCL list string into its element strings.
// Braced elements are taken verbatim; quoted and bare elements have
// backslash sequences substituted.
func parseList(s string) ([]string, error) {
	var elems []string
	n := len(s)
	i := 0

	for {
		// Skip whitespace
		for i < n && isListSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}

		switch s[i] {
		case '{':
			depth := 1
			j := i + 1
			for j < n && depth > 0 {
				switch s[j] {
				case '\\':
					j++
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unmatched open brace in list")
			}
			if j < n && !isListSpace(s[j]) {
				return nil, fmt.Errorf("list element in braces followed by %q instead of space", trailing(s[j:]))
			}
			elems = append(elems, s[i+1:j-1])
			i = j

		case '"':
			var b strings.Builder
			j := i + 1
			for j < n && s[j] != '"' {
				if s[j] == '\\' {
					sub, width := backslashSubst(s[j:])
					b.WriteString(sub)
					j += width
					continue
				}
				b.WriteByte(s[j])
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("unmatched open quote in list")
			}
			j++ // closing quote
			if j < n && !isListSpace(s[j]) {
				return nil, fmt.Errorf("list element in quotes followed by %q instead of space", trailing(s[j:]))
			}
			elems = append(elems, b.String())
			i = j

		default:
			var b strings.Builder
			j := i
			for j < n && !isListSpace(s[j]) {
				if s[j] == '\\' {
					sub, width := backslashSubst(s[j:])
					b.WriteString(sub)
					j += width
					continue
				}
				b.WriteByte(s[j])
				j++
			}
			elems = append(elems, b.String())
			i = j
		}
	}

	return elems, nil
}

// trailing returns the run of non-space characters at the start of s,
// used in parse error messages.
func trailing(s string) string {
	end := 0
	for end < len(s) && !isListSpace(s[end]) {
		end++
	}
	return s[:end]
}

// backslashSubst decodes the backslash sequence at the start of s.
// Returns the substituted text and the number of bytes consumed.
func backslashSubst(s string) (string, int) {
	if len(s) < 2 {
		return "\\", 1
	}
	switch s[1] {
	case 'n':
		return "\n", 2
	case 't':
		return "\t", 2
	case 'r':
		return "\r", 2
	case 'a':
		return "\a", 2
	case 'b':
		return "\b", 2
	case 'f':
		return "\f", 2
	case 'v':
		return "\v", 2
	case '\n':
		// Backslash-newline collapses with following blanks into one space
		width := 2
		for width < len(s) && (s[width] == ' ' || s[width] == '\t') {
			width++
		}
		return " ", width
	}
	return s[1:2], 2
}

func isListSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// listQuote quotes a string for list representation if needed
func listQuote(s string) string {
	if s == "" {
		return "{}"
	}

	needsQuoting := s[0] == '{' || s[0] == '"'
	braceBalance := 0
	unbalanced := false
	hasBackslash := false

	for _, c := range s {
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f', '"', '[', ']', '$', ';':
			needsQuoting = true
		case '\\':
			hasBackslash = true
			needsQuoting = true
		case '{':
			braceBalance++
		case '}':
			braceBalance--
			if braceBalance < 0 {
				unbalanced = true
				needsQuoting = true
			}
		}
	}

	// Simple case: no special chars and balanced braces
	if !needsQuoting && braceBalance == 0 {
		return s
	}

	// Can use braces if balanced and no backslashes
	if braceBalance == 0 && !unbalanced && !hasBackslash {
		return "{" + s + "}"
	}

	// Fall back to backslash quoting
	return backslashQuote(s)
}

// backslashQuote escapes special characters with backslashes
func backslashQuote(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\n':
			b.WriteString(`\n`)
			continue
		case '\t':
			b.WriteString(`\t`)
			continue
		case '\r':
			b.WriteString(`\r`)
			continue
		case '\v':
			b.WriteString(`\v`)
			continue
		case '\f':
			b.WriteString(`\f`)
			continue
		case ' ', '{', '}', '"', '\\', '[', ']', '$', ';':
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
