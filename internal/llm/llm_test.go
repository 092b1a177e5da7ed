// File path: internal/llm/llm_test.go
package llm

import "testing"

func TestNewProviderFallsBackToLocal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	provider := NewProvider()
	if provider.Name() != "local" {
		t.Fatalf("expected local fallback, got %q", provider.Name())
	}
}
