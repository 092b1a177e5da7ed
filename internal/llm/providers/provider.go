// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is one turn of a model conversation. ToolCall is set on assistant
// messages that requested a function invocation; ToolResponse carries the
// dispatcher result back on "tool" role messages.
type Message struct {
	Role         string
	Content      string
	ToolCall     *ToolCall
	ToolResponse *ToolResponse
}

// ToolSpec declares one callable function to the model. Parameters is a
// JSON-schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is the model's request to invoke a named function. Arguments is
// the raw JSON object emitted by the model, left unparsed so validation
// stays with the dispatcher.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResponse is the serialized result of an executed tool call.
type ToolResponse struct {
	CallID  string
	Name    string
	Content string
}

// ChatResult is the outcome of a tool-aware completion: generated text,
// plus any tool call the model chose instead of (or before) answering.
type ChatResult struct {
	Content  string
	ToolCall *ToolCall
}

// Provider abstracts the external generation and embedding services. Both
// are blocking calls; callers impose timeouts through ctx.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	ChatWithTools(ctx context.Context, messages []Message, tools []ToolSpec) (*ChatResult, error)
	Embed(ctx context.Context, input []string) ([][]float32, error)
	Name() string
}
