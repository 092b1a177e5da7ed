// File path: internal/llm/providers/openai.go
package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/deskmate-ai/deskmate/internal/common"
)

const chatTemperature = 0.3

// OpenAIProvider serves chat completions and embeddings through an
// OpenAI-compatible endpoint.
type OpenAIProvider struct {
	model      *lcopenai.LLM
	chatModel  string
	embedModel string
}

func NewOpenAIProvider(model *lcopenai.LLM, chatModel, embedModel string) *OpenAIProvider {
	logger := common.Logger()
	logger.Info("llm: OpenAI provider configured", "chat_model", chatModel, "embed_model", embedModel)
	return &OpenAIProvider{model: model, chatModel: chatModel, embedModel: embedModel}
}

func (o *OpenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	result, err := o.complete(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

func (o *OpenAIProvider) ChatWithTools(ctx context.Context, messages []Message, tools []ToolSpec) (*ChatResult, error) {
	return o.complete(ctx, messages, tools)
}

func (o *OpenAIProvider) complete(ctx context.Context, messages []Message, tools []ToolSpec) (*ChatResult, error) {
	if o.model == nil {
		return nil, fmt.Errorf("nil openai model")
	}
	logger := common.Logger()
	content, err := buildContent(messages)
	if err != nil {
		return nil, err
	}
	opts := []llms.CallOption{llms.WithTemperature(chatTemperature)}
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(buildTools(tools)))
	}
	logger.Debug("llm: sending chat completion request", "model", o.chatModel, "messages", len(messages), "tools", len(tools))
	resp, err := o.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		logger.Error("llm: chat completion failed", "error", err)
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	choice := resp.Choices[0]
	result := &ChatResult{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		if call.FunctionCall == nil {
			continue
		}
		result.ToolCall = &ToolCall{
			ID:        call.ID,
			Name:      call.FunctionCall.Name,
			Arguments: call.FunctionCall.Arguments,
		}
		break
	}
	logger.Debug("llm: chat completion succeeded", "tool_call", result.ToolCall != nil)
	return result, nil
}

func (o *OpenAIProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	if o.model == nil {
		return nil, fmt.Errorf("nil openai model")
	}
	if len(input) == 0 {
		return nil, nil
	}
	logger := common.Logger()
	logger.Debug("llm: creating embeddings", "model", o.embedModel, "items", len(input))
	vectors, err := o.model.CreateEmbedding(ctx, input)
	if err != nil {
		logger.Error("llm: embedding request failed", "error", err)
		return nil, err
	}
	logger.Debug("llm: embedding request succeeded", "returned", len(vectors))
	return vectors, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

func buildContent(messages []Message) ([]llms.MessageContent, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case "user":
			content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case "assistant":
			if msg.ToolCall != nil {
				content = append(content, llms.MessageContent{
					Role: llms.ChatMessageTypeAI,
					Parts: []llms.ContentPart{llms.ToolCall{
						ID:   msg.ToolCall.ID,
						Type: "function",
						FunctionCall: &llms.FunctionCall{
							Name:      msg.ToolCall.Name,
							Arguments: msg.ToolCall.Arguments,
						},
					}},
				})
				continue
			}
			content = append(content, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		case "tool":
			if msg.ToolResponse == nil {
				return nil, fmt.Errorf("tool message missing response payload")
			}
			content = append(content, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolResponse.CallID,
					Name:       msg.ToolResponse.Name,
					Content:    msg.ToolResponse.Content,
				}},
			})
		default:
			return nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}
	return content, nil
}

func buildTools(specs []ToolSpec) []llms.Tool {
	tools := make([]llms.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return tools
}
