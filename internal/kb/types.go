// File path: internal/kb/types.go
package kb

// Article is a single knowledge base entry as authored in the source JSON
// file. Articles are immutable once loaded; the loader is the only producer.
type Article struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	RelatedIssues []string `json:"related_issues,omitempty"`
}

// Chunk is a bounded slice of one article's composed text, the unit stored
// in the vector index. Parent metadata is denormalized onto the chunk so
// retrieval results can be displayed without a second lookup.
type Chunk struct {
	ArticleID  string   `json:"article_id"`
	ChunkIndex int      `json:"chunk_index"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags,omitempty"`
	Text       string   `json:"text"`
}
