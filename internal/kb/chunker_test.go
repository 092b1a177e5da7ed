// File path: internal/kb/chunker_test.go
package kb

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	text := "Restart the router and wait thirty seconds."
	chunks := Split(text, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Fatalf("short text should pass through unchanged, got %q", chunks[0])
	}
}

func TestSplitEmptyText(t *testing.T) {
	if chunks := Split("", 100, 10); chunks != nil {
		t.Fatalf("expected nil for empty text, got %v", chunks)
	}
}

func TestSplitRespectsMaxSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Step: hold the power button for ten seconds before release.\n\n")
	}
	chunks := Split(b.String(), 200, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > 200 {
			t.Fatalf("chunk %d has %d runes, exceeds max 200", i, n)
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	para := strings.Repeat("a", 120)
	text := para + "\n\n" + para + "\n\n" + para
	chunks := Split(text, 150, 0)
	for i, chunk := range chunks {
		if strings.Contains(strings.TrimSuffix(chunk, "\n\n"), "\n\n") {
			t.Fatalf("chunk %d spans a paragraph boundary: %q", i, chunk)
		}
	}
}

func TestSplitOverlapShared(t *testing.T) {
	words := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ")
	chunks := Split(text, 100, 30)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-10:])
		if !strings.Contains(chunks[i], tail) {
			t.Fatalf("chunk %d does not carry the tail of chunk %d", i, i-1)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("The VPN client must be version 4.2 or newer. ", 60)
	first := Split(text, 180, 40)
	second := Split(text, 180, 40)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitLongWordCharacterFallback(t *testing.T) {
	text := strings.Repeat("x", 500)
	chunks := Split(text, 100, 0)
	if len(chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk) > 100 {
			t.Fatalf("chunk %d exceeds max size", i)
		}
	}
}

func TestComposeTextFormat(t *testing.T) {
	article := Article{
		ID:       "kb_001",
		Category: "network",
		Title:    "VPN Connection Issues",
		Content:  "Check your credentials.",
		Tags:     []string{"vpn", "remote"},
	}
	got := ComposeText(article)
	want := "\nTitle: VPN Connection Issues\nCategory: network\nID: kb_001\n\nCheck your credentials.\n\nTags: vpn, remote\n"
	if got != want {
		t.Fatalf("composed text mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestChunkArticleMetadata(t *testing.T) {
	article := Article{
		ID:       "kb_002",
		Category: "hardware",
		Title:    "Printer Not Responding",
		Content:  strings.Repeat("Power-cycle the printer and check the queue. ", 40),
		Tags:     []string{"printer"},
	}
	chunks := ChunkArticle(article, 200, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ArticleID != "kb_002" {
			t.Fatalf("chunk %d has article id %q", i, chunk.ArticleID)
		}
		if chunk.ChunkIndex != i {
			t.Fatalf("chunk %d has index %d", i, chunk.ChunkIndex)
		}
		if chunk.Title != article.Title || chunk.Category != article.Category {
			t.Fatalf("chunk %d lost article metadata", i)
		}
	}
}
