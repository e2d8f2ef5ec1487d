package ansiext

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Escape replaces control characters with their Unicode Control Picture
// representations so that untrusted text cannot drive the terminal.
func Escape(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch {
		case r >= 0 && r <= 0x1f: // Control characters 0x00-0x1F
			sb.WriteRune('␀' + r)
		case r == ansi.DEL:
			sb.WriteRune('␡')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Line escapes content and cuts it to width cells, marking the cut with an
// ellipsis. A non-positive width disables truncation.
func Line(content string, width int) string {
	escaped := Escape(content)
	if width <= 0 {
		return escaped
	}
	return ansi.Truncate(escaped, width, "…")
}
