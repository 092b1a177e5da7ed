// File path: internal/vector/index.go
package vector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/kb"
)

const (
	vectorsFile = "vectors.json"
	chunksFile  = "chunks.json"
)

// Embedder is the minimal contract needed to vectorize chunk text.
type Embedder interface {
	Embed(ctx context.Context, input []string) ([][]float32, error)
}

// Match pairs an indexed chunk with its raw distance to the query vector.
// Lower distance means closer.
type Match struct {
	Chunk    kb.Chunk
	Distance float32
}

// Index is a flat nearest-neighbor store over chunk vectors. It is built or
// loaded once and is immutable afterwards, so concurrent searches need no
// locking.
type Index struct {
	dim     int
	vectors [][]float32
	chunks  []kb.Chunk
}

// IndexCorruptError reports a persisted bundle whose vector data and chunk
// metadata disagree. It is fatal at startup: no index means no service.
type IndexCorruptError struct {
	Path   string
	Reason string
}

func (e *IndexCorruptError) Error() string {
	return fmt.Sprintf("vector index at %s is corrupt: %s", e.Path, e.Reason)
}

// Build embeds every chunk and assembles the index. Chunk order is
// preserved; the embedding service is the only unbounded-latency call.
func Build(ctx context.Context, chunks []kb.Chunk, embedder Embedder) (*Index, error) {
	logger := common.Logger()
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	dim := 0
	for i, vec := range vectors {
		if i == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("embedder returned mixed dimensions: %d and %d", dim, len(vec))
		}
	}
	logger.Info("vector: index built", "chunks", len(chunks), "dim", dim)
	return &Index{dim: dim, vectors: vectors, chunks: append([]kb.Chunk(nil), chunks...)}, nil
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Dim reports the uniform vector dimensionality.
func (ix *Index) Dim() int {
	if ix == nil {
		return 0
	}
	return ix.dim
}

// Chunks returns a copy of the indexed chunk records in index order.
func (ix *Index) Chunks() []kb.Chunk {
	if ix == nil {
		return nil
	}
	return append([]kb.Chunk(nil), ix.chunks...)
}

// Search returns up to k matches ordered ascending by squared L2 distance,
// nearest first. Fewer than k are returned when the index holds fewer
// chunks. The index is never mutated by a search.
func (ix *Index) Search(query []float32, k int) []Match {
	if ix == nil || k <= 0 || len(ix.chunks) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(ix.chunks))
	for i, vec := range ix.vectors {
		matches = append(matches, Match{Chunk: ix.chunks[i], Distance: sqL2(query, vec)})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Persist writes the index as a two-part bundle under dir: vector data and
// the parallel chunk-metadata table.
func (ix *Index) Persist(dir string) error {
	logger := common.Logger()
	if ix == nil {
		return fmt.Errorf("nil index")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, vectorsFile), ix.vectors); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, chunksFile), ix.chunks); err != nil {
		return err
	}
	logger.Info("vector: index persisted", "dir", dir, "chunks", len(ix.chunks))
	return nil
}

// Load reads a persisted bundle and verifies that vectors and chunk
// metadata agree in count and dimensionality.
func Load(dir string) (*Index, error) {
	logger := common.Logger()
	var vectors [][]float32
	if err := readJSON(filepath.Join(dir, vectorsFile), &vectors); err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	var chunks []kb.Chunk
	if err := readJSON(filepath.Join(dir, chunksFile), &chunks); err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, &IndexCorruptError{
			Path:   dir,
			Reason: fmt.Sprintf("%d vectors but %d chunk records", len(vectors), len(chunks)),
		}
	}
	dim := 0
	for i, vec := range vectors {
		if i == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, &IndexCorruptError{
				Path:   dir,
				Reason: fmt.Sprintf("vector %d has dimension %d, expected %d", i, len(vec), dim),
			}
		}
	}
	logger.Info("vector: index loaded", "dir", dir, "chunks", len(chunks), "dim", dim)
	return &Index{dim: dim, vectors: vectors, chunks: chunks}, nil
}

// sqL2 is the squared euclidean distance. Squared form keeps the same
// ordering as true L2 and matches the non-negative scale the similarity
// mapping assumes.
func sqL2(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	// Treat missing components of a shorter vector as zeros.
	for i := n; i < len(a); i++ {
		sum += a[i] * a[i]
	}
	for i := n; i < len(b); i++ {
		sum += b[i] * b[i]
	}
	return sum
}

func writeJSON(path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
