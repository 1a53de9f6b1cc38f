package linker

import "strings"

// leadingInt parses the leading decimal digits of s, ignoring anything
// after them (so "2048 }" parses as 2048). Returns fallback when s has no
// leading digits.
func leadingInt(s string, fallback int) int {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return fallback
	}
	if neg {
		return -n
	}
	return n
}

// stripCommentMarker removes a leading // or a complete /* */ pair and
// returns the trimmed inner text.
func stripCommentMarker(line string) string {
	s := line
	if rest, ok := strings.CutPrefix(s, "//"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "/*"); ok {
		s = rest
		if _, after, found := strings.Cut(s, "*/"); found {
			s = after
		}
	}
	return strings.TrimSpace(s)
}

// governMode extracts the mode word from the text after "!govern",
// cutting at the first space or trailing comment slash.
func governMode(rest string) string {
	s := strings.TrimSpace(rest)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// spanKind extracts the kind from an "align span<kind>" line.
// Malformed declarations fall back to "fixed".
func spanKind(line string) string {
	_, after, ok := strings.Cut(line, "<")
	if !ok {
		return "fixed"
	}
	kind, _, ok := strings.Cut(after, ">")
	if !ok {
		return "fixed"
	}
	return kind
}

// parenContent returns the text between the first '(' and the last ')'.
// With no '(' it returns the whole line; with no closing ')' it returns
// everything after the '('.
func parenContent(line string) string {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return line
	}
	end := strings.LastIndexByte(line, ')')
	if end <= open {
		return line[open+1:]
	}
	return line[open+1 : end]
}

// stripTrailingComment drops a trailing /* or // comment from an
// expression and trims the result.
func stripTrailingComment(expr string) string {
	if i := strings.Index(expr, "/*"); i >= 0 {
		expr = expr[:i]
	}
	if i := strings.Index(expr, "//"); i >= 0 {
		expr = expr[:i]
	}
	return strings.TrimSpace(expr)
}
