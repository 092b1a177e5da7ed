// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"

	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

type ToolSpec = providers.ToolSpec

type ToolCall = providers.ToolCall

type ToolResponse = providers.ToolResponse

type ChatResult = providers.ChatResult

// NewProvider selects the generation backend from the environment: an
// OpenAI-compatible endpoint when OPENAI_API_KEY is present, otherwise the
// deterministic local fallback.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	chatModel := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	embedModel := strings.TrimSpace(os.Getenv("OPENAI_EMBEDDING_MODEL"))
	if embedModel == "" {
		embedModel = "text-embedding-3-small"
	}
	opts := []lcopenai.Option{
		lcopenai.WithToken(apiKey),
		lcopenai.WithModel(chatModel),
		lcopenai.WithEmbeddingModel(embedModel),
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, lcopenai.WithBaseURL(endpoint))
	} else {
		logger.Debug("llm: using default OpenAI endpoint")
	}
	model, err := lcopenai.New(opts...)
	if err != nil {
		logger.Error("llm: OpenAI client init failed; falling back to local provider", "error", err)
		return providers.NewLocalProvider()
	}
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(model, chatModel, embedModel)
}
