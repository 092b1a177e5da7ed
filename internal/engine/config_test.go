// File path: internal/engine/config_test.go
package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeOverlaysNonZeroFields(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(Config{KBPath: "custom.json", TopK: 5})
	if merged.KBPath != "custom.json" {
		t.Fatalf("kb path not overridden: %q", merged.KBPath)
	}
	if merged.TopK != 5 {
		t.Fatalf("top_k not overridden: %d", merged.TopK)
	}
	if merged.Threshold != base.Threshold || merged.ChunkSize != base.ChunkSize {
		t.Fatal("zero override fields must keep base values")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Threshold != 0.7 || cfg.TopK != 3 || cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DESKMATE_KB_PATH", "env_kb.json")
	t.Setenv("DESKMATE_SIMILARITY_THRESHOLD", "0.5")
	t.Setenv("DESKMATE_TOP_K", "7")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.KBPath != "env_kb.json" || cfg.Threshold != 0.5 || cfg.TopK != 7 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"top_k": 9, "kb_path": "file_kb.json"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DESKMATE_CONFIG_FILE", path)
	t.Setenv("DESKMATE_KB_PATH", "env_wins.json")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TopK != 9 {
		t.Fatalf("file override not applied: %d", cfg.TopK)
	}
	if cfg.KBPath != "env_wins.json" {
		t.Fatalf("env should win over file: %q", cfg.KBPath)
	}
}

func TestLoadConfigRejectsBadThreshold(t *testing.T) {
	t.Setenv("DESKMATE_SIMILARITY_THRESHOLD", "1.5")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for out-of-range threshold")
	}
}

func TestLoadConfigRejectsOverlapNotBelowSize(t *testing.T) {
	t.Setenv("DESKMATE_CHUNK_SIZE", "100")
	t.Setenv("DESKMATE_CHUNK_OVERLAP", "100")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when overlap is not smaller than chunk size")
	}
}
