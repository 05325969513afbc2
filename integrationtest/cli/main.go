// Package main provides an interactive CLI for building block trees and
// inspecting how they render under different styles.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/chat"
	"github.com/promptview/promptview/render"
	"github.com/promptview/promptview/style"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

type session struct {
	builder *promptview.Builder
	styles  *style.Manager
}

func newSession() *session {
	return &session{
		builder: promptview.NewBuilder(promptview.NewBlock()),
		styles:  style.NewManager(),
	}
}

func run() error {
	rl, err := readline.New(colorCyan + "pv> " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s := newSession()
	printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-C/Ctrl-D
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "q", "quit", "exit":
			return nil
		case "help":
			printHelp()
		case "open":
			s.builder.Open(rest)
			fmt.Printf("%sopened (depth %d)%s\n", colorDim, s.builder.Depth(), colorReset)
		case "close":
			s.builder.Close()
			fmt.Printf("%sclosed (depth %d)%s\n", colorDim, s.builder.Depth(), colorReset)
		case "line":
			s.builder.Line(rest)
		case "text":
			s.builder.Text(rest)
		case "style":
			s.builder.Current().WithStyle(strings.Fields(rest)...)
		case "tag":
			s.builder.Current().WithTags(strings.Fields(rest)...)
		case "role":
			s.builder.Current().WithRole(promptview.Role(rest))
		case "rule":
			addRule(s, rest)
		case "render":
			renderTree(s)
		case "messages":
			printMessages(s)
		case "dump":
			printDump(s)
		case "tree":
			printTree(s.builder.Root(), 0)
		case "reset":
			s = newSession()
			fmt.Printf("%sreset%s\n", colorDim, colorReset)
		default:
			fmt.Printf("%sunknown command %q, try 'help'%s\n", colorYellow, cmd, colorReset)
		}
	}
}

// addRule parses "selector prop=value ..." into a style rule.
func addRule(s *session, rest string) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		fmt.Printf("%susage: rule <selector> <prop>=<value>...%s\n", colorYellow, colorReset)
		return
	}
	props := style.Props{}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			fmt.Printf("%sbad declaration %q%s\n", colorYellow, field, colorReset)
			return
		}
		props[key] = value
	}
	if err := s.styles.AddRule(fields[0], props); err != nil {
		fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Printf("%srule added%s\n", colorDim, colorReset)
}

func renderTree(s *session) {
	out, err := render.New(s.styles).Render(s.builder.Root())
	if err != nil {
		fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Println(colorGreen + out + colorReset)
}

func printMessages(s *session) {
	messages, tools, err := chat.NewTransformer(render.New(s.styles)).Transform(s.builder.Root())
	if err != nil {
		fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
		return
	}
	for i, msg := range messages {
		fmt.Printf("%s[%d] %s%s\n", colorCyan, i, msg.Role, colorReset)
		for _, part := range msg.Parts {
			fmt.Printf("  %v\n", part)
		}
	}
	if tools.Len() > 0 {
		fmt.Println(colorDim + tools.Describe() + colorReset)
	}
}

func printDump(s *session) {
	data, err := s.builder.Root().MarshalJSON()
	if err != nil {
		fmt.Printf("%s%v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Println(string(data))
}

func printTree(b *promptview.Block, depth int) {
	label := b.Content().Inline()
	if label == "" {
		label = "(wrapper)"
	}
	meta := ""
	if b.Role() != "" {
		meta += " role=" + string(b.Role())
	}
	if len(b.Tags()) > 0 {
		meta += " tags=" + strings.Join(b.Tags(), ",")
	}
	if len(b.Styles()) > 0 {
		meta += " style=" + strings.Join(b.Styles(), ",")
	}
	fmt.Printf("%s%s%s%s%s\n",
		strings.Repeat("  ", depth), label, colorDim, meta, colorReset)
	for _, child := range b.Children() {
		printTree(child, depth+1)
	}
}

func printHelp() {
	fmt.Print(colorDim + `Commands:
  open <text>     open a nested block and make it current
  close           close the current block
  line <text>     append a child line to the current block
  text <text>     append inline text to the current block
  style <tok>...  add inline style tokens to the current block
  tag <tag>...    add tags to the current block
  role <role>     set the current block's role
  rule <sel> <k>=<v>...  register a style rule
  render          render the tree
  messages        flatten the tree to LLM messages
  dump            print the JSON dump
  tree            print the tree structure
  reset           start over
  q               quit
` + colorReset)
}
