package render

import (
	"fmt"
	"strings"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/schema"
)

// renderXML wraps the children in a tag named after the head sentence.
// A tag with no inner content renders self-closing. Attributes keep
// insertion order; schema.Attr values render as their placeholder so a
// model sees the fill-in instructions instead of a struct dump.
func renderXML(b *promptview.Block, head string, inner []string, indent int) string {
	if head == "" {
		return strings.Join(inner, "\n")
	}
	var attrs strings.Builder
	for _, key := range b.AttrKeys() {
		attrs.WriteString(fmt.Sprintf(" %s=%q", key, attrValue(b.Attrs()[key])))
	}
	if len(inner) == 0 {
		return fmt.Sprintf("<%s%s/>", head, attrs.String())
	}
	body := indentLines(strings.Join(inner, "\n"), strings.Repeat(" ", indent))
	return fmt.Sprintf("<%s%s>\n%s\n</%s>", head, attrs.String(), body, head)
}

func attrValue(v any) string {
	if a, ok := v.(*schema.Attr); ok {
		return a.Placeholder()
	}
	return fmt.Sprintf("%v", v)
}
