// File path: internal/prompt/assembler.go

// Package prompt builds the deterministic grounding prompt sent to the
// generation service: knowledge context, fixed instructions, chat history,
// then the question, always in that order.
package prompt

import (
	"fmt"
	"strings"

	"github.com/deskmate-ai/deskmate/internal/conversation"
	"github.com/deskmate-ai/deskmate/internal/retriever"
)

const (
	// NoContextSentinel is emitted in place of the context block when no
	// document passed the similarity threshold. The instruction block
	// tells the model how to react to it, so the wording is load-bearing.
	NoContextSentinel = "No relevant information found in the knowledge base."
	// NoHistorySentinel replaces the history block on a fresh session.
	NoHistorySentinel = "No previous conversation."

	docDelimiter = "\n---\n"
)

const template = `You are an IT Support Assistant. Use the knowledge base context to answer questions.

Context:
%s

Instructions:
1. If context contains relevant information, provide clear step-by-step solutions
2. If context says "No relevant information found", acknowledge this and offer general help
3. Be professional, friendly, and empathetic
4. Reference knowledge base article IDs when providing solutions
5. Never make up information not in the context

Chat History:
%s

User Question: %s

Answer:`

// Build renders the full prompt. Retrieved documents stay in the
// similarity-ranked order the retriever returned, so earlier-listed sources
// read as more authoritative to the generation step.
func Build(docs []retriever.RetrievedDocument, history []conversation.Turn, question string) string {
	return fmt.Sprintf(template, FormatDocs(docs), FormatHistory(history), question)
}

// FormatDocs renders each retrieved document with its article identifier,
// title, category, and full chunk text.
func FormatDocs(docs []retriever.RetrievedDocument) string {
	if len(docs) == 0 {
		return NoContextSentinel
	}
	formatted := make([]string, 0, len(docs))
	for i, doc := range docs {
		formatted = append(formatted, fmt.Sprintf(
			"Article %d (ID: %s):\nTitle: %s\nCategory: %s\nContent: %s\n",
			i+1, doc.Chunk.ArticleID, doc.Chunk.Title, doc.Chunk.Category, doc.Chunk.Text,
		))
	}
	return strings.Join(formatted, docDelimiter)
}

// FormatHistory renders recent turns as "User:"/"Assistant:" lines.
func FormatHistory(history []conversation.Turn) string {
	if len(history) == 0 {
		return NoHistorySentinel
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case conversation.RoleUser:
			lines = append(lines, "User: "+turn.Content)
		case conversation.RoleAssistant:
			lines = append(lines, "Assistant: "+turn.Content)
		}
	}
	if len(lines) == 0 {
		return NoHistorySentinel
	}
	return strings.Join(lines, "\n")
}
