package render

import "strings"

// escapeAttr escapes text for inclusion in a double-quoted attribute value.
// A single pass gives the same result as replacing &, <, >, " and ' one after
// the other, & first.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 16)

	// Bytes, not runes: every escaped character is ASCII and invalid UTF-8
	// must pass through untouched.
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteByte(c)
		}
	}

	return buf.String()
}

// escapeText escapes text content. It uses the attribute table so that
// escaped text and attribute values read the same.
func escapeText(s string) string {
	return escapeAttr(s)
}
