// File path: internal/engine/engine.go

// Package engine orchestrates one support request end to end: retrieve,
// assemble the grounding prompt, call the generation service, run any
// requested function through the dispatcher, and update the conversation.
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/conversation"
	"github.com/deskmate-ai/deskmate/internal/dispatch"
	"github.com/deskmate-ai/deskmate/internal/llm"
	"github.com/deskmate-ai/deskmate/internal/prompt"
	"github.com/deskmate-ai/deskmate/internal/retriever"
)

const sourcePreviewLimit = 200

// Source is a retrieval citation as returned to callers.
type Source struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	ContentPreview string `json:"content_preview"`
}

// Reply is the outcome of one processed message. FunctionResult is set only
// when the generation step requested a function call.
type Reply struct {
	Answer         string      `json:"answer"`
	Sources        []Source    `json:"sources"`
	FunctionResult interface{} `json:"function_result,omitempty"`
}

// Engine wires the retriever, prompt assembly, generation provider, and
// function dispatcher into the request pipeline. One request is processed
// synchronously start to finish.
type Engine struct {
	retriever  *retriever.Retriever
	provider   llm.Provider
	dispatcher *dispatch.Dispatcher
	tools      []llm.ToolSpec

	topK          int
	historyWindow int
}

func New(retr *retriever.Retriever, provider llm.Provider, dispatcher *dispatch.Dispatcher, cfg Config) *Engine {
	cfg = DefaultConfig().Merge(cfg)
	return &Engine{
		retriever:     retr,
		provider:      provider,
		dispatcher:    dispatcher,
		tools:         toolSpecs(dispatcher),
		topK:          cfg.TopK,
		historyWindow: cfg.HistoryWindow,
	}
}

func toolSpecs(dispatcher *dispatch.Dispatcher) []llm.ToolSpec {
	if dispatcher == nil {
		return nil
	}
	specs := dispatcher.Specs()
	tools := make([]llm.ToolSpec, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, llm.ToolSpec{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.ParametersSchema(),
		})
	}
	return tools
}

// Process handles one user message against the given session context. Any
// generation or dispatch failure becomes a user-facing error string; the
// conversation is mutated only when the turn succeeds.
func (e *Engine) Process(ctx context.Context, convo *conversation.Context, message string) Reply {
	logger := common.Logger()

	docs, err := e.retriever.Search(ctx, message, e.topK)
	if err != nil {
		logger.Error("engine: retrieval failed", "error", err)
		return errorReply(err)
	}
	history := convo.Recent(e.historyWindow)
	grounding := prompt.Build(docs, history, message)
	messages := []llm.Message{{Role: "user", Content: grounding}}

	result, err := e.provider.ChatWithTools(ctx, messages, e.tools)
	if err != nil {
		logger.Error("engine: generation failed", "error", err)
		return errorReply(err)
	}

	answer := result.Content
	var functionResult interface{}
	if result.ToolCall != nil {
		answer, functionResult, err = e.runToolCall(ctx, messages, result)
		if err != nil {
			logger.Error("engine: function call failed", "function", result.ToolCall.Name, "error", err)
			return errorReply(err)
		}
	}

	convo.Append(conversation.Turn{Role: conversation.RoleUser, Content: message})
	convo.Append(conversation.Turn{Role: conversation.RoleAssistant, Content: answer})

	return Reply{
		Answer:         answer,
		Sources:        formatSources(docs),
		FunctionResult: functionResult,
	}
}

// runToolCall executes the requested function and feeds the result back for
// a second, grounded generation pass. When the second pass fails, the raw
// function result is returned alongside the first-pass answer instead of
// failing the whole turn.
func (e *Engine) runToolCall(ctx context.Context, messages []llm.Message, first *llm.ChatResult) (string, interface{}, error) {
	logger := common.Logger()
	call := first.ToolCall

	var args map[string]interface{}
	if trimmed := call.Arguments; trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
			return "", nil, fmt.Errorf("parse function arguments: %w", err)
		}
	}
	result, err := e.dispatcher.Dispatch(call.Name, args)
	if err != nil {
		return "", nil, err
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode function result: %w", err)
	}

	followUp := append(append([]llm.Message(nil), messages...),
		llm.Message{Role: "assistant", Content: first.Content, ToolCall: call},
		llm.Message{Role: "tool", ToolResponse: &llm.ToolResponse{
			CallID:  call.ID,
			Name:    call.Name,
			Content: string(payload),
		}},
	)
	answer, err := e.provider.Chat(ctx, followUp)
	if err != nil {
		logger.Warn("engine: second generation pass failed; returning raw function result", "function", call.Name, "error", err)
		answer = first.Content
		if answer == "" {
			answer = fmt.Sprintf("I've run %s for you; the result is attached.", call.Name)
		}
	}
	return answer, result, nil
}

func formatSources(docs []retriever.RetrievedDocument) []Source {
	sources := make([]Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, Source{
			ID:             doc.Chunk.ArticleID,
			Title:          doc.Chunk.Title,
			Category:       doc.Chunk.Category,
			ContentPreview: retriever.Preview(doc.Chunk.Text, sourcePreviewLimit),
		})
	}
	return sources
}

func errorReply(err error) Reply {
	return Reply{
		Answer:  fmt.Sprintf("Error processing request: %v", err),
		Sources: []Source{},
	}
}
