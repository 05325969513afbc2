package chat

import (
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/promptview/promptview"
	"github.com/promptview/promptview/render"
)

// Transformer flattens block trees into LLM messages. The renderer
// decides how each message's tree renders to text, so the same tree can
// produce markdown messages for one provider and XML for another.
type Transformer struct {
	renderer *render.Renderer
}

// NewTransformer creates a transformer rendering messages through r.
// A nil renderer applies inline styles only.
func NewTransformer(r *render.Renderer) *Transformer {
	if r == nil {
		r = render.New(nil)
	}
	return &Transformer{renderer: r}
}

// Transform flattens the tree rooted at root into an ordered message
// list plus the set of tools found on the way. A block with a role is a
// message boundary: the whole subtree under it renders into that one
// message. Role-less blocks above the boundaries are transparent
// containers. A role-less subtree with no boundaries inside becomes a
// user message, the conventional default for bare prompt content.
func (t *Transformer) Transform(root *promptview.Block) ([]llms.MessageContent, *Toolset, error) {
	tools := NewToolset()
	for b := range root.Traverse() {
		if tool := b.Tool(); tool != nil {
			tools.Add(tool)
		}
	}

	var messages []llms.MessageContent
	if err := t.collect(root, &messages); err != nil {
		return nil, nil, err
	}
	return messages, tools, nil
}

func (t *Transformer) collect(b *promptview.Block, messages *[]llms.MessageContent) error {
	if b.Role() != "" {
		msg, err := t.message(b)
		if err != nil {
			return err
		}
		*messages = append(*messages, msg)
		return nil
	}
	if hasRoleBoundary(b) {
		for _, child := range b.Children() {
			if err := t.collect(child, messages); err != nil {
				return err
			}
		}
		return nil
	}
	text, err := t.renderer.Render(b)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	*messages = append(*messages, llms.TextParts(llms.ChatMessageTypeHuman, text))
	return nil
}

// message renders one role-tagged block into a single message.
func (t *Transformer) message(b *promptview.Block) (llms.MessageContent, error) {
	if err := b.Validate(); err != nil {
		return llms.MessageContent{}, err
	}
	text, err := t.renderer.Render(b)
	if err != nil {
		return llms.MessageContent{}, err
	}

	switch b.Role() {
	case promptview.RoleTool:
		return llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: b.ID(),
				Content:    text,
			}},
		}, nil
	case promptview.RoleAssistant:
		msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if text != "" {
			msg.Parts = append(msg.Parts, llms.TextContent{Text: text})
		}
		for _, call := range b.ToolCalls() {
			part, err := toolCallPart(call)
			if err != nil {
				return llms.MessageContent{}, err
			}
			msg.Parts = append(msg.Parts, part)
		}
		return msg, nil
	case promptview.RoleSystem:
		return llms.TextParts(llms.ChatMessageTypeSystem, text), nil
	default:
		return llms.TextParts(llms.ChatMessageTypeHuman, text), nil
	}
}

func toolCallPart(call promptview.ToolCall) (llms.ContentPart, error) {
	args, err := json.Marshal(call.Args)
	if err != nil {
		return nil, fmt.Errorf("chat: encode args for tool %q: %w", call.Name, err)
	}
	return llms.ToolCall{
		ID:   call.ID,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      call.Name,
			Arguments: string(args),
		},
	}, nil
}

// hasRoleBoundary reports whether any descendant of b carries a role.
func hasRoleBoundary(b *promptview.Block) bool {
	for _, child := range b.Children() {
		if child.Role() != "" || hasRoleBoundary(child) {
			return true
		}
	}
	return false
}

// Tools converts the toolset to LangChainGo's tool declarations, ready
// to pass as llms.WithTools.
func Tools(ts *Toolset) []llms.Tool {
	out := make([]llms.Tool, 0, ts.Len())
	for _, tool := range ts.All() {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return out
}
