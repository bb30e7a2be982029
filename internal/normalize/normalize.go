// Package normalize canonicalizes SQL text so that expected and printed
// statements can be compared without caring about layout, comments or the
// escape style of string literals.
package normalize

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Whitespace collapses all whitespace sequences to a single space
// and trims leading/trailing whitespace.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Statements strips comments from s, splits it at semicolons outside of
// string literals and quoted names, and returns each non-empty statement
// with whitespace collapsed and string escapes rewritten to the doubled
// quote form.
func Statements(s string) []string {
	var out []string
	for _, stmt := range split(StripComments(s)) {
		stmt = Whitespace(Escapes(stmt))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Escapes rewrites backslash escapes inside single-quoted strings:
//   - \' becomes ''
//   - \\ becomes \
func Escapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !inString {
			result.WriteByte(ch)
			inString = ch == '\''
			continue
		}
		switch {
		case ch == '\\' && i+1 < len(s) && s[i+1] == '\'':
			result.WriteString("''")
			i++
		case ch == '\\' && i+1 < len(s) && s[i+1] == '\\':
			result.WriteByte('\\')
			i++
		case ch == '\'' && i+1 < len(s) && s[i+1] == '\'':
			result.WriteString("''")
			i++
		case ch == '\'':
			result.WriteByte(ch)
			inString = false
		default:
			result.WriteByte(ch)
		}
	}
	return result.String()
}

// StripComments removes SQL comments from a query string.
// It handles:
//   - Line comments: -- or # to end of line
//   - Block comments: /* ... */ with nesting support
func StripComments(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] == '#' || i+1 < len(s) && s[i] == '-' && s[i+1] == '-' {
			for i < len(s) && s[i] != '\n' {
				i++
			}
			continue
		}

		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			depth := 1
			i += 2
			for i < len(s) && depth > 0 {
				if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
					depth++
					i += 2
				} else if i+1 < len(s) && s[i] == '*' && s[i+1] == '/' {
					depth--
					i += 2
				} else {
					i++
				}
			}
			result.WriteByte(' ')
			continue
		}

		if end := quotedEnd(s, i); end > i {
			result.WriteString(s[i:end])
			i = end
			continue
		}

		result.WriteByte(s[i])
		i++
	}

	return result.String()
}

// split cuts s at every semicolon that is not inside quotes.
func split(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); {
		if end := quotedEnd(s, i); end > i {
			i = end
			continue
		}
		if s[i] == ';' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
		i++
	}
	return append(parts, s[start:])
}

// quotedEnd returns the offset just past the quoted run starting at s[i],
// or i if s[i] does not open a quote. Unterminated runs end at len(s).
func quotedEnd(s string, i int) int {
	quote := s[i]
	if quote != '\'' && quote != '`' && quote != '"' {
		return i
	}
	j := i + 1
	for j < len(s) {
		switch {
		case s[j] == '\\' && j+1 < len(s):
			j += 2
		case s[j] == quote && j+1 < len(s) && s[j+1] == quote:
			j += 2
		case s[j] == quote:
			return j + 1
		default:
			j++
		}
	}
	return len(s)
}
