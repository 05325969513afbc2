package render

import "strings"

// maxHeadingLevel caps markdown headings: nesting past six levels keeps
// rendering at h6 rather than producing invalid markdown.
const maxHeadingLevel = 6

// renderMarkdown renders the head as a heading whose level tracks the
// block's depth. Children follow at column zero: markdown structure is
// carried by heading levels, not indentation.
func renderMarkdown(head string, inner []string, depth int) string {
	if head == "" {
		return strings.Join(inner, "\n")
	}
	level := depth + 1
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	out := strings.Repeat("#", level) + " " + head
	if len(inner) > 0 {
		out += "\n" + strings.Join(inner, "\n")
	}
	return out
}
