package render

import (
	"strings"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/style"
)

// Renderer renders block trees under one style manager.
type Renderer struct {
	styles *style.Manager
}

// New returns a renderer that resolves styles through the given manager.
// A nil manager behaves like an empty one: only inline styles apply.
func New(styles *style.Manager) *Renderer {
	if styles == nil {
		styles = style.NewManager()
	}
	return &Renderer{styles: styles}
}

// Render renders the tree rooted at b with no registered rules. Inline
// styles still apply.
func Render(b *promptview.Block) (string, error) {
	return New(nil).Render(b)
}

// Render produces the final string for the tree rooted at b.
func (r *Renderer) Render(b *promptview.Block) (string, error) {
	return r.render(b, 0, "")
}

// render walks one block. depth counts non-wrapper ancestors, which is
// what heading levels key on. inherited carries a children-format dialect
// forced by an ancestor, applied only when the block declares none.
func (r *Renderer) render(b *promptview.Block, depth int, inherited string) (string, error) {
	props, unknown := r.styles.Resolve(b)
	if len(unknown) > 0 {
		return "", &UndefinedStyleError{Tag: unknown[0], Breadcrumb: b.Breadcrumb()}
	}

	format := props.GetString(style.PropFormat, "")
	if format == "" {
		format = inherited
	}
	if format == "" {
		format = style.FormatPlain
	}

	head := b.Content().Inline()
	wrapper := head == ""
	childDepth := depth
	if !wrapper {
		childDepth = depth + 1
	}

	childFormat := props.GetString(style.PropChildrenFormat, "")
	forced := ""
	switch childFormat {
	case style.FormatPlain, style.FormatMarkdown, style.FormatXML:
		forced = childFormat
	}

	var inner []string
	for _, child := range b.Children() {
		out, err := r.render(child, childDepth, forced)
		if err != nil {
			return "", err
		}
		if out == "" {
			continue
		}
		inner = append(inner, out)
	}

	bulleted := childFormat == style.FormatList
	if bulleted {
		inner = bulletItems(inner, props.GetString(style.PropBullet, style.BulletNumber))
	}

	// An attached tool contributes its documentation (name, description,
	// parameter table) as the first body item, ahead of any children.
	if tool := b.Tool(); tool != nil {
		inner = append([]string{tool.Describe()}, inner...)
	}

	indent := props.GetInt(style.PropIndent, 2)

	switch format {
	case style.FormatMarkdown:
		return renderMarkdown(head, inner, depth), nil
	case style.FormatXML:
		return renderXML(b, head, inner, indent), nil
	default:
		return renderPlain(head, inner, indent, bulleted), nil
	}
}

// renderPlain joins the head with its children, indenting each child by
// the indent unit. Bulleted children carry their own visual indent, so
// they attach flush under the head.
func renderPlain(head string, inner []string, indent int, bulleted bool) string {
	if head == "" {
		return strings.Join(inner, "\n")
	}
	if len(inner) == 0 {
		return head
	}
	body := strings.Join(inner, "\n")
	if !bulleted {
		body = indentLines(body, strings.Repeat(" ", indent))
	}
	return head + "\n" + body
}

// indentLines prefixes every non-empty line of s.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
