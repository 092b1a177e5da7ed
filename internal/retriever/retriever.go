// File path: internal/retriever/retriever.go
package retriever

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/kb"
	"github.com/deskmate-ai/deskmate/internal/vector"
)

// DefaultThreshold is the minimum normalized similarity a chunk must reach
// to be considered relevant.
const DefaultThreshold = 0.7

// RetrievedDocument is a chunk that passed the similarity threshold for one
// query. Ephemeral; never persisted.
type RetrievedDocument struct {
	Chunk      kb.Chunk
	Similarity float64
}

// ArticleSummary is the per-article view returned by RelevantArticles.
type ArticleSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Preview  string `json:"preview"`
}

// SimilarityFunc converts a raw index distance into a normalized score.
// The default assumes a non-negative distance where lower means more
// relevant.
type SimilarityFunc func(distance float32) float64

// DefaultSimilarity maps an unbounded non-negative distance into (0,1] via
// 1/(1+d). The mapping is a convention inherited from the index's L2 scale,
// not a probability; swap it when the distance metric changes.
func DefaultSimilarity(distance float32) float64 {
	return 1 / (1 + float64(distance))
}

// Retriever filters nearest-neighbor matches by a runtime-adjustable
// similarity threshold. It never mutates the underlying index.
type Retriever struct {
	embedder vector.Embedder

	mu         sync.RWMutex
	index      *vector.Index
	threshold  float64
	similarity SimilarityFunc
}

type Option func(*Retriever)

// WithSimilarity overrides the distance-to-similarity mapping.
func WithSimilarity(fn SimilarityFunc) Option {
	return func(r *Retriever) {
		if fn != nil {
			r.similarity = fn
		}
	}
}

// WithThreshold sets the initial similarity threshold. Out-of-range values
// fall back to the default.
func WithThreshold(value float64) Option {
	return func(r *Retriever) {
		if value >= 0 && value <= 1 {
			r.threshold = value
		}
	}
}

func New(index *vector.Index, embedder vector.Embedder, opts ...Option) *Retriever {
	r := &Retriever{
		index:      index,
		embedder:   embedder,
		threshold:  DefaultThreshold,
		similarity: DefaultSimilarity,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetIndex swaps the active index. Used when the knowledge base is rebuilt
// while the service is running; in-flight searches keep the old snapshot.
func (r *Retriever) SetIndex(index *vector.Index) {
	r.mu.Lock()
	r.index = index
	r.mu.Unlock()
}

// Threshold returns the active similarity threshold.
func (r *Retriever) Threshold() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.threshold
}

// SetThreshold replaces the active threshold for all subsequent queries.
// Values outside [0,1] are rejected.
func (r *Retriever) SetThreshold(value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %g", value)
	}
	r.mu.Lock()
	r.threshold = value
	r.mu.Unlock()
	common.Logger().Info("retriever: similarity threshold updated", "threshold", value)
	return nil
}

// SearchOption adjusts a single query.
type SearchOption func(*searchConfig)

type searchConfig struct {
	dedupe bool
}

// Deduped drops all but the best-scoring chunk per article.
func Deduped() SearchOption {
	return func(cfg *searchConfig) {
		cfg.dedupe = true
	}
}

// Search embeds the query, over-fetches 2k nearest neighbors, converts
// distances to similarities, and keeps up to k documents at or above the
// threshold in descending similarity order. An empty result is not an
// error; callers degrade gracefully.
func (r *Retriever) Search(ctx context.Context, query string, k int, opts ...SearchOption) ([]RetrievedDocument, error) {
	logger := common.Logger()
	if k <= 0 {
		return nil, nil
	}
	var cfg searchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	r.mu.RLock()
	index := r.index
	threshold := r.threshold
	simFn := r.similarity
	r.mu.RUnlock()

	// Over-fetch to compensate for post-filtering.
	matches := index.Search(vectors[0], 2*k)
	docs := make([]RetrievedDocument, 0, k)
	seen := make(map[string]struct{})
	for _, match := range matches {
		similarity := simFn(match.Distance)
		if similarity < threshold {
			continue
		}
		if cfg.dedupe {
			if _, dup := seen[match.Chunk.ArticleID]; dup {
				continue
			}
			seen[match.Chunk.ArticleID] = struct{}{}
		}
		docs = append(docs, RetrievedDocument{Chunk: match.Chunk, Similarity: similarity})
		if len(docs) >= k {
			break
		}
	}
	sort.SliceStable(docs, func(a, b int) bool {
		return docs[a].Similarity > docs[b].Similarity
	})
	logger.Debug("retriever: search complete", "query_length", len(query), "k", k, "threshold", threshold, "results", len(docs))
	return docs, nil
}

// RelevantArticles returns up to k distinct articles matching the query,
// with bounded content previews. An empty query lists articles straight
// from the index, bypassing the threshold.
func (r *Retriever) RelevantArticles(ctx context.Context, query string, k int) ([]ArticleSummary, error) {
	if k <= 0 {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		r.mu.RLock()
		index := r.index
		r.mu.RUnlock()
		return summarize(chunksAsDocs(index.Chunks()), k), nil
	}
	docs, err := r.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	return summarize(docs, k), nil
}

func chunksAsDocs(chunks []kb.Chunk) []RetrievedDocument {
	docs := make([]RetrievedDocument, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, RetrievedDocument{Chunk: chunk})
	}
	return docs
}

func summarize(docs []RetrievedDocument, k int) []ArticleSummary {
	summaries := make([]ArticleSummary, 0, k)
	seen := make(map[string]struct{})
	for _, doc := range docs {
		if _, dup := seen[doc.Chunk.ArticleID]; dup {
			continue
		}
		seen[doc.Chunk.ArticleID] = struct{}{}
		summaries = append(summaries, ArticleSummary{
			ID:       doc.Chunk.ArticleID,
			Title:    doc.Chunk.Title,
			Category: doc.Chunk.Category,
			Preview:  Preview(doc.Chunk.Text, 300),
		})
		if len(summaries) >= k {
			break
		}
	}
	return summaries
}

// Preview bounds text to the first limit runes with an ellipsis marker.
func Preview(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
