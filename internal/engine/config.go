// File path: internal/engine/config.go
package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries the tunables for the request pipeline and index build.
type Config struct {
	KBPath       string `json:"kb_path"`
	IndexPath    string `json:"index_path"`
	TicketDBPath string `json:"ticket_db_path"`

	Threshold    float64 `json:"similarity_threshold"`
	TopK         int     `json:"top_k"`
	ChunkSize    int     `json:"chunk_size"`
	ChunkOverlap int     `json:"chunk_overlap"`

	HistoryWindow int `json:"history_window"`
	MaxTurns      int `json:"max_turns"`
}

// DefaultConfig mirrors the tuning the knowledge base was authored for.
func DefaultConfig() Config {
	return Config{
		KBPath:        "it_knowledge_base.json",
		IndexPath:     "deskmate_index",
		Threshold:     0.7,
		TopK:          3,
		ChunkSize:     500,
		ChunkOverlap:  50,
		HistoryWindow: 6,
		MaxTurns:      10,
	}
}

// Merge overlays non-zero override fields onto the base configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.KBPath) != "" {
		result.KBPath = strings.TrimSpace(override.KBPath)
	}
	if strings.TrimSpace(override.IndexPath) != "" {
		result.IndexPath = strings.TrimSpace(override.IndexPath)
	}
	if strings.TrimSpace(override.TicketDBPath) != "" {
		result.TicketDBPath = strings.TrimSpace(override.TicketDBPath)
	}
	if override.Threshold > 0 {
		result.Threshold = override.Threshold
	}
	if override.TopK > 0 {
		result.TopK = override.TopK
	}
	if override.ChunkSize > 0 {
		result.ChunkSize = override.ChunkSize
	}
	if override.ChunkOverlap > 0 {
		result.ChunkOverlap = override.ChunkOverlap
	}
	if override.HistoryWindow > 0 {
		result.HistoryWindow = override.HistoryWindow
	}
	if override.MaxTurns > 0 {
		result.MaxTurns = override.MaxTurns
	}
	return result
}

// LoadConfig builds the effective configuration: defaults, then an optional
// JSON config file named by DESKMATE_CONFIG_FILE, then individual
// environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("DESKMATE_CONFIG_FILE")); path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(configFromEnv())
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return Config{}, fmt.Errorf("similarity threshold must be between 0 and 1, got %g", cfg.Threshold)
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return Config{}, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return cfg, nil
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func configFromEnv() Config {
	cfg := Config{
		KBPath:       os.Getenv("DESKMATE_KB_PATH"),
		IndexPath:    os.Getenv("DESKMATE_INDEX_PATH"),
		TicketDBPath: os.Getenv("DESKMATE_TICKET_DB"),
	}
	if raw := strings.TrimSpace(os.Getenv("DESKMATE_SIMILARITY_THRESHOLD")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.Threshold = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("DESKMATE_TOP_K")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.TopK = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("DESKMATE_CHUNK_SIZE")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.ChunkSize = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("DESKMATE_CHUNK_OVERLAP")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.ChunkOverlap = parsed
		}
	}
	return cfg
}
