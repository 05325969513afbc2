// Package testutil provides shared fixtures and assertion helpers for
// integration test scenarios.
package testutil

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/style"
)

// RenderDiff returns a unified diff between the expected and actual
// rendered output, or the empty string when they match. Prompts are
// whitespace-sensitive, so the diff shows every line verbatim rather
// than a trimmed comparison.
func RenderDiff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		return "diff failed: " + err.Error()
	}
	return diff
}

// AssertRender fails the test with a unified diff when got differs from
// want. Trailing-newline mismatches show up in the diff like any other
// byte; nothing is normalized.
func AssertRender(t testing.TB, want, got string) {
	t.Helper()
	if diff := RenderDiff(want, got); diff != "" {
		t.Errorf("rendered output mismatch (-want +got):\n%s", diff)
	}
}

// Conversation builds a representative prompt tree: a system section
// with markdown rules, a short user/assistant history, and a pending
// user turn. Integration scenarios and the interactive CLI both start
// from this shape.
func Conversation() *promptview.Block {
	root := promptview.NewBlock()

	system := promptview.NewBlock("Instructions").
		WithRole(promptview.RoleSystem).
		WithTags("system").
		WithStyle("md")
	rules := promptview.NewBlock("Rules").WithTags("rules").WithStyle("md", "list")
	rules.AddChildren(
		promptview.NewBlock("answer briefly"),
		promptview.NewBlock("cite sources"),
		promptview.NewBlock("never guess"),
	)
	system.AddChild(rules)

	history := promptview.NewBlock().WithTags("history")
	history.AddChildren(
		promptview.NewBlock("What is the capital of France?").
			WithRole(promptview.RoleUser),
		promptview.NewBlock("Paris.").
			WithRole(promptview.RoleAssistant),
	)

	turn := promptview.NewBlock("And of Italy?").
		WithRole(promptview.RoleUser).
		WithTags("turn")

	root.AddChildren(system, history, turn)
	return root
}

// Styles returns a style manager with the rules the integration
// scenarios assume: markdown sections, bulleted rules.
func Styles() *style.Manager {
	m := style.NewManager()
	if err := m.AddRule("system", style.Props{style.PropFormat: style.FormatMarkdown}); err != nil {
		panic(err)
	}
	if err := m.AddRule("rules", style.Props{
		style.PropChildrenFormat: style.FormatList,
		style.PropBullet:         style.BulletNumber,
	}); err != nil {
		panic(err)
	}
	return m
}

// Indent prefixes every non-empty line, matching the renderer's indent
// behavior, for building expected output in tests.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
