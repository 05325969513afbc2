package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/schema"
	"github.com/promptview/promptview/style"
)

func mustRender(t *testing.T, b *promptview.Block, m *style.Manager) string {
	t.Helper()
	out, err := New(m).Render(b)
	require.NoError(t, err)
	return out
}

func TestRender_PlainIndentsChildren(t *testing.T) {
	root := promptview.NewBlock("title")
	root.AddChildren(promptview.NewBlock("hello"), promptview.NewBlock("world"))

	out := mustRender(t, root, nil)
	assert.Equal(t, "title\n  hello\n  world", out)
}

func TestRender_WrapperContributesNothing(t *testing.T) {
	wrapper := promptview.NewBlock()
	wrapper.AddChildren(promptview.NewBlock("a"), promptview.NewBlock("b"))

	out := mustRender(t, wrapper, nil)
	assert.Equal(t, "a\nb", out)
}

func TestRender_EmptyBlockRendersEmpty(t *testing.T) {
	assert.Equal(t, "", mustRender(t, promptview.NewBlock(), nil))
}

func TestRender_AttachedToolEmitsItsDocumentation(t *testing.T) {
	search := schema.NewTool("search", "Search the knowledge base.",
		schema.Object(map[string]*schema.Property{
			"query": schema.String("the search query"),
		}, "query"))
	root := promptview.NewBlock("Available tools").WithTool(search)

	out := mustRender(t, root, nil)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Available tools", lines[0])
	assert.Contains(t, out, "search: Search the knowledge base.")
	assert.Contains(t, out, "- query (string) (required): the search query")
}

func TestRender_ToolDocumentationPrecedesChildren(t *testing.T) {
	fetch := schema.NewTool("fetch", "Fetch a URL.", nil)
	root := promptview.NewBlock("Tools").WithTool(fetch)
	root.AddChild(promptview.NewBlock("Use sparingly."))

	out := mustRender(t, root, nil)
	assert.Equal(t, "Tools\n  fetch: Fetch a URL.\n  Use sparingly.", out)
}

func TestRender_MarkdownHeadingPerDepth(t *testing.T) {
	root := promptview.NewBlock("Instructions").WithStyle("md")
	rules := promptview.NewBlock("Rules").WithStyle("md")
	rules.AddChildren(promptview.NewBlock("be brief"), promptview.NewBlock("cite sources"))
	root.AddChild(rules)

	out := mustRender(t, root, nil)
	assert.Equal(t, "# Instructions\n## Rules\nbe brief\ncite sources", out)
}

func TestRender_MarkdownHeadingCapsAtSix(t *testing.T) {
	// Nest deeper than six markdown levels.
	root := promptview.NewBlock("L0").WithStyle("md")
	current := root
	for i := 1; i <= 7; i++ {
		child := promptview.NewBlock("L" + string(rune('0'+i))).WithStyle("md")
		current.AddChild(child)
		current = child
	}

	out := mustRender(t, root, nil)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "# L0", lines[0])
	assert.Equal(t, "###### L6", lines[6])
	assert.Equal(t, "###### L7", lines[7])
}

func TestRender_WrapperDoesNotConsumeDepth(t *testing.T) {
	wrapper := promptview.NewBlock()
	section := promptview.NewBlock("Section").WithStyle("md")
	wrapper.AddChild(section)

	out := mustRender(t, wrapper, nil)
	assert.Equal(t, "# Section", out)
}

func TestRender_Bullets(t *testing.T) {
	newList := func(styleTok string, items ...string) *promptview.Block {
		b := promptview.NewBlock("Rules").WithStyle(styleTok)
		for _, item := range items {
			b.AddChild(promptview.NewBlock(item))
		}
		return b
	}

	tests := []struct {
		name     string
		styleTok string
		items    []string
		expected string
	}{
		{
			name:     "number bullets are one-based",
			styleTok: "list",
			items:    []string{"a", "b", "c"},
			expected: "Rules\n1. a\n2. b\n3. c",
		},
		{
			name:     "astrix alias",
			styleTok: "list:astrix",
			items:    []string{"a", "b", "c"},
			expected: "Rules\n* a\n* b\n* c",
		},
		{
			name:     "dash alias",
			styleTok: "list:dash",
			items:    []string{"a", "b", "c"},
			expected: "Rules\n- a\n- b\n- c",
		},
		{
			name:     "alpha bullets",
			styleTok: "list:alpha",
			items:    []string{"x", "y"},
			expected: "Rules\na. x\nb. y",
		},
		{
			name:     "roman bullets",
			styleTok: "list:roman",
			items:    []string{"x", "y", "z"},
			expected: "Rules\ni. x\nii. y\niii. z",
		},
		{
			name:     "upper roman bullets",
			styleTok: "list:roman_upper",
			items:    []string{"x", "y"},
			expected: "Rules\nI. x\nII. y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRender(t, newList(tt.styleTok, tt.items...), nil)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_BulletFallbackBeyondTable(t *testing.T) {
	t.Run("roman past ten uses arabic", func(t *testing.T) {
		b := promptview.NewBlock("Items").WithStyle("list:roman")
		for i := 0; i < 11; i++ {
			b.AddChild(promptview.NewBlock("item"))
		}
		out := mustRender(t, b, nil)
		lines := strings.Split(out, "\n")
		assert.Equal(t, "x. item", lines[10])
		assert.Equal(t, "11. item", lines[11])
	})

	t.Run("alpha past z uses arabic", func(t *testing.T) {
		b := promptview.NewBlock("Items").WithStyle("list:alpha")
		for i := 0; i < 27; i++ {
			b.AddChild(promptview.NewBlock("item"))
		}
		out := mustRender(t, b, nil)
		lines := strings.Split(out, "\n")
		assert.Equal(t, "z. item", lines[26])
		assert.Equal(t, "27. item", lines[27])
	})
}

func TestRender_ListContinuationAlignsUnderBullet(t *testing.T) {
	b := promptview.NewBlock("Rules").WithStyle("list")
	item := promptview.NewBlock("this is main rule 2")
	item.AddChild(promptview.NewBlock("sub rule a"))
	b.AddChild(promptview.NewBlock("this is main rule 1"))
	b.AddChild(item)

	out := mustRender(t, b, nil)
	assert.Equal(t,
		"Rules\n"+
			"1. this is main rule 1\n"+
			"2. this is main rule 2\n"+
			"     sub rule a",
		out)
}

func TestRender_XMLNesting(t *testing.T) {
	root := promptview.NewBlock("root").WithStyle("xml")
	person := promptview.NewBlock("person").WithStyle("xml")
	person.AddChild(promptview.NewBlock("Alice"))
	root.AddChild(person)

	out := mustRender(t, root, nil)
	assert.Equal(t,
		"<root>\n"+
			"  <person>\n"+
			"    Alice\n"+
			"  </person>\n"+
			"</root>",
		out)
}

func TestRender_XMLSelfClosing(t *testing.T) {
	b := promptview.NewBlock("person").WithStyle("xml")
	assert.Equal(t, "<person/>", mustRender(t, b, nil))

	withAttr := promptview.NewBlock("person").WithStyle("xml").WithAttr("name", "ada")
	assert.Equal(t, `<person name="ada"/>`, mustRender(t, withAttr, nil))
}

func TestRender_XMLAttrPlaceholder(t *testing.T) {
	b := promptview.NewBlock("observation").WithStyle("xml").
		WithAttr("confidence", schema.NewAttr("confidence", schema.FieldFloat, "how sure").WithGe(0).WithLe(1))

	out := mustRender(t, b, nil)
	assert.Contains(t, out, "confidence=")
	assert.Contains(t, out, "how sure")
	assert.Contains(t, out, "ge=0 le=1")
	assert.True(t, strings.HasSuffix(out, "/>"))
}

func TestRender_XMLAttrOrderFollowsInsertion(t *testing.T) {
	b := promptview.NewBlock("person").WithStyle("xml").
		WithAttr("zeta", "1").
		WithAttr("alpha", "2")

	out := mustRender(t, b, nil)
	assert.True(t, strings.Index(out, "zeta=") < strings.Index(out, "alpha="))
}

func TestRender_UndefinedStyleSurfaces(t *testing.T) {
	root := promptview.NewBlock().WithTags("task")
	bad := promptview.NewBlock("x").WithStyle("glitter")
	root.AddChild(bad)

	_, err := Render(root)
	var uerr *UndefinedStyleError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "glitter", uerr.Tag)
	assert.Contains(t, uerr.Breadcrumb, "[task]")
}

func TestRender_ChildrenFormatForcesDialect(t *testing.T) {
	m := style.NewManager()
	require.NoError(t, m.AddRule("doc", style.Props{
		style.PropChildrenFormat: style.FormatMarkdown,
	}))

	root := promptview.NewBlock("Doc").WithTags("doc")
	root.AddChild(promptview.NewBlock("Sub"))

	out := mustRender(t, root, m)
	assert.Equal(t, "Doc\n  ## Sub", out)
}

func TestRender_ManagerRulesApply(t *testing.T) {
	m := style.NewManager()
	require.NoError(t, m.AddRule("rules", style.Props{
		style.PropChildrenFormat: style.FormatList,
		style.PropBullet:         style.BulletNumber,
	}))

	b := promptview.NewBlock("Rules").WithTags("rules")
	b.AddChildren(promptview.NewBlock("one"), promptview.NewBlock("two"))

	out := mustRender(t, b, m)
	assert.Equal(t, "Rules\n1. one\n2. two", out)
}

func TestRender_CustomIndentUnit(t *testing.T) {
	m := style.NewManager()
	require.NoError(t, m.AddRule("wide", style.Props{style.PropIndent: 4}))

	b := promptview.NewBlock("head").WithTags("wide")
	b.AddChild(promptview.NewBlock("body"))

	out := mustRender(t, b, m)
	assert.Equal(t, "head\n    body", out)
}
