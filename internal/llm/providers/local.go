// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const localEmbedDim = 64

// LocalProvider is the offline fallback used when no API key is configured.
// Chat answers are canned; embeddings are a deterministic hashed
// bag-of-words so retrieval stays functional without a network.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1].Content
	return "[local] " + strings.TrimSpace(last), nil
}

func (l *LocalProvider) ChatWithTools(ctx context.Context, messages []Message, tools []ToolSpec) (*ChatResult, error) {
	answer, err := l.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}
	return &ChatResult{Content: answer}, nil
}

func (l *LocalProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i, text := range input {
		vectors[i] = hashEmbed(text)
	}
	return vectors, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}

func hashEmbed(text string) []float32 {
	vec := make([]float32, localEmbedDim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()[]")
		if token == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%localEmbedDim]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}
