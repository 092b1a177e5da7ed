// File path: internal/prompt/assembler_test.go
package prompt

import (
	"strings"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/conversation"
	"github.com/deskmate-ai/deskmate/internal/kb"
	"github.com/deskmate-ai/deskmate/internal/retriever"
)

func testDocs() []retriever.RetrievedDocument {
	return []retriever.RetrievedDocument{
		{Chunk: kb.Chunk{ArticleID: "kb_001", Title: "VPN Issues", Category: "network", Text: "Reinstall the client."}, Similarity: 0.95},
		{Chunk: kb.Chunk{ArticleID: "kb_002", Title: "Slow Wi-Fi", Category: "network", Text: "Move closer."}, Similarity: 0.8},
	}
}

func TestBuildSectionOrder(t *testing.T) {
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "my vpn is broken"},
		{Role: conversation.RoleAssistant, Content: "Have you reinstalled the client?"},
	}
	out := Build(testDocs(), history, "still broken, what next?")

	markers := []string{
		"You are an IT Support Assistant.",
		"Context:",
		"Article 1 (ID: kb_001):",
		"Instructions:",
		"Chat History:",
		"User: my vpn is broken",
		"User Question: still broken, what next?",
		"Answer:",
	}
	pos := -1
	for _, marker := range markers {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("prompt missing %q", marker)
		}
		if idx < pos {
			t.Fatalf("section %q out of order", marker)
		}
		pos = idx
	}
}

func TestBuildDeterministic(t *testing.T) {
	docs := testDocs()
	history := []conversation.Turn{{Role: conversation.RoleUser, Content: "hello"}}
	if Build(docs, history, "q") != Build(docs, history, "q") {
		t.Fatal("identical inputs produced different prompts")
	}
}

func TestFormatDocsEmptySentinel(t *testing.T) {
	if got := FormatDocs(nil); got != NoContextSentinel {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestFormatDocsDelimiter(t *testing.T) {
	out := FormatDocs(testDocs())
	if !strings.Contains(out, "\n---\n") {
		t.Fatal("documents not delimited")
	}
	if !strings.Contains(out, "Article 2 (ID: kb_002):") {
		t.Fatal("second document not numbered")
	}
	if !strings.Contains(out, "Content: Reinstall the client.") {
		t.Fatal("chunk text missing")
	}
}

func TestFormatHistoryEmptySentinel(t *testing.T) {
	if got := FormatHistory(nil); got != NoHistorySentinel {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestFormatHistoryLines(t *testing.T) {
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "first"},
		{Role: conversation.RoleAssistant, Content: "second"},
	}
	want := "User: first\nAssistant: second"
	if got := FormatHistory(history); got != want {
		t.Fatalf("history mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatHistorySkipsUnknownRoles(t *testing.T) {
	history := []conversation.Turn{{Role: conversation.Role("system"), Content: "hidden"}}
	if got := FormatHistory(history); got != NoHistorySentinel {
		t.Fatalf("unknown-role-only history should yield sentinel, got %q", got)
	}
}
