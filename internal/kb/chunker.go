// File path: internal/kb/chunker.go
package kb

import "strings"

const (
	// DefaultChunkSize is the chunk length the index was tuned for.
	DefaultChunkSize = 500
	// DefaultChunkOverlap is carried between adjacent chunks so a solution
	// step split across a boundary stays answerable.
	DefaultChunkOverlap = 50
)

// separators are tried highest priority first; the empty separator is the
// character-level last resort.
var separators = []string{"\n\n", "\n", " ", ""}

// Split divides text into chunks of at most maxSize runes. It prefers
// breaking on paragraph boundaries, then lines, then words, and only when a
// single unit still exceeds maxSize does it cut at the character level.
// Adjacent chunks share an overlap-sized region. Identical input and
// parameters always produce identical output.
func Split(text string, maxSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 2
	}
	if runeLen(text) <= maxSize {
		return []string{text}
	}
	pieces := splitBySeparators(text, maxSize, separators)
	return mergePieces(pieces, maxSize, overlap)
}

// ChunkArticle composes the embeddable text for an article and splits it,
// denormalizing the article metadata onto every chunk.
func ChunkArticle(article Article, maxSize, overlap int) []Chunk {
	text := ComposeText(article)
	parts := Split(text, maxSize, overlap)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, Chunk{
			ArticleID:  article.ID,
			ChunkIndex: i,
			Title:      article.Title,
			Category:   article.Category,
			Tags:       append([]string(nil), article.Tags...),
			Text:       part,
		})
	}
	return chunks
}

// ComposeText renders the article into the flat form that gets embedded:
// header metadata, body, then tags, so category and tag words contribute to
// the vector alongside the content.
func ComposeText(article Article) string {
	var b strings.Builder
	b.WriteString("\nTitle: ")
	b.WriteString(article.Title)
	b.WriteString("\nCategory: ")
	b.WriteString(article.Category)
	b.WriteString("\nID: ")
	b.WriteString(article.ID)
	b.WriteString("\n\n")
	b.WriteString(article.Content)
	b.WriteString("\n\nTags: ")
	b.WriteString(strings.Join(article.Tags, ", "))
	b.WriteString("\n")
	return b.String()
}

// splitBySeparators breaks text into pieces no longer than maxSize, walking
// the separator priority list and recursing with lower-priority separators
// on any piece that is still too large.
func splitBySeparators(text string, maxSize int, seps []string) []string {
	if runeLen(text) <= maxSize {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	if len(seps) == 0 || seps[0] == "" {
		return splitRunes(text, maxSize)
	}
	sep := seps[0]
	parts := strings.Split(text, sep)
	var out []string
	for i, part := range parts {
		if i < len(parts)-1 {
			// Keep the separator attached so rejoined chunks
			// reproduce the original spacing.
			part += sep
		}
		if part == "" {
			continue
		}
		if runeLen(part) > maxSize {
			out = append(out, splitBySeparators(part, maxSize, seps[1:])...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

// mergePieces packs pieces greedily into chunks of at most maxSize runes,
// seeding each new chunk with the overlap-sized suffix of the previous one.
func mergePieces(pieces []string, maxSize, overlap int) []string {
	var chunks []string
	cur := ""
	fresh := false
	for _, piece := range pieces {
		if fresh && runeLen(cur)+runeLen(piece) > maxSize {
			chunks = append(chunks, cur)
			carry := overlap
			if keep := maxSize - runeLen(piece); keep < carry {
				carry = keep
			}
			if carry < 0 {
				carry = 0
			}
			cur = runeSuffix(cur, carry)
			fresh = false
		}
		cur += piece
		if piece != "" {
			fresh = true
		}
	}
	if fresh && cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

func splitRunes(text string, maxSize int) []string {
	runes := []rune(text)
	var out []string
	for len(runes) > maxSize {
		out = append(out, string(runes[:maxSize]))
		runes = runes[maxSize:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}

func runeSuffix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
