// File path: internal/kb/loader.go
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/deskmate-ai/deskmate/internal/common"
)

// LoadArticles reads the knowledge base JSON file: an ordered array of
// article records. The file is the source of truth and is never written by
// this process.
func LoadArticles(path string) ([]Article, error) {
	logger := common.Logger()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	seen := make(map[string]struct{}, len(articles))
	for _, article := range articles {
		id := strings.TrimSpace(article.ID)
		if id == "" {
			return nil, fmt.Errorf("knowledge base %s: article with empty id", path)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("knowledge base %s: duplicate article id %q", path, id)
		}
		seen[id] = struct{}{}
	}
	logger.Info("kb: knowledge base loaded", "path", path, "articles", len(articles))
	return articles, nil
}

// ChunkArticles splits every article with the given parameters, preserving
// article order and per-article chunk ordering.
func ChunkArticles(articles []Article, maxSize, overlap int) []Chunk {
	var chunks []Chunk
	for _, article := range articles {
		chunks = append(chunks, ChunkArticle(article, maxSize, overlap)...)
	}
	return chunks
}
