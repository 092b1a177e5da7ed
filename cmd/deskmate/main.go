// File path: cmd/deskmate/main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deskmate-ai/deskmate/internal/api"
	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/conversation"
	"github.com/deskmate-ai/deskmate/internal/dispatch"
	"github.com/deskmate-ai/deskmate/internal/engine"
	"github.com/deskmate-ai/deskmate/internal/kb"
	"github.com/deskmate-ai/deskmate/internal/llm"
	"github.com/deskmate-ai/deskmate/internal/retriever"
	"github.com/deskmate-ai/deskmate/internal/vector"
	"github.com/deskmate-ai/deskmate/internal/watch"
)

func main() {
	_ = godotenv.Load()
	logger := common.Logger()

	addr := flag.String("addr", ":8080", "listen address for the HTTP API")
	kbPath := flag.String("kb", "", "path to the knowledge base JSON file (overrides config)")
	indexPath := flag.String("index", "", "directory for the persisted vector index (overrides config)")
	ticketDB := flag.String("ticket-db", "", "path to the sqlite ticket database (overrides config)")
	rebuild := flag.Bool("rebuild", false, "rebuild the vector index from the knowledge base and exit")
	watchKB := flag.Bool("watch", true, "rebuild the index automatically when the knowledge base file changes")
	flag.Parse()

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Error("main: invalid configuration", "error", err)
		os.Exit(1)
	}
	if *kbPath != "" {
		cfg.KBPath = *kbPath
	}
	if *indexPath != "" {
		cfg.IndexPath = *indexPath
	}
	if *ticketDB != "" {
		cfg.TicketDBPath = *ticketDB
	}

	provider := llm.NewProvider()
	logger.Info("main: language model provider ready", "provider", provider.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *rebuild {
		if _, err := buildIndex(ctx, cfg, provider); err != nil {
			logger.Error("main: index rebuild failed", "error", err)
			os.Exit(1)
		}
		logger.Info("main: index rebuilt", "path", cfg.IndexPath)
		return
	}

	index, err := loadOrBuildIndex(ctx, cfg, provider)
	if err != nil {
		logger.Error("main: index unavailable", "error", err)
		os.Exit(1)
	}

	retr := retriever.New(index, provider, retriever.WithThreshold(cfg.Threshold))

	var tickets dispatch.TicketStore
	if cfg.TicketDBPath != "" {
		store, err := dispatch.OpenSQLiteTicketStore(cfg.TicketDBPath)
		if err != nil {
			logger.Error("main: ticket database unavailable", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		tickets = store
		logger.Info("main: tickets persisted to sqlite", "path", cfg.TicketDBPath)
	}
	dispatcher := dispatch.New(tickets)

	eng := engine.New(retr, provider, dispatcher, cfg)
	sessions := conversation.NewRegistry(cfg.MaxTurns)
	server, err := api.NewServer(eng, retr, dispatcher, sessions)
	if err != nil {
		logger.Error("main: server setup failed", "error", err)
		os.Exit(1)
	}

	if *watchKB {
		watcher, err := watch.New(cfg.KBPath, func(ctx context.Context) error {
			rebuilt, err := buildIndex(ctx, cfg, provider)
			if err != nil {
				return err
			}
			retr.SetIndex(rebuilt)
			return nil
		})
		if err != nil {
			logger.Warn("main: knowledge base watcher disabled", "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("main: shutdown error", "error", err)
		}
	}()

	logger.Info("main: listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("main: server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("main: stopped")
}

// buildIndex chunks the knowledge base, embeds it, and persists the result.
func buildIndex(ctx context.Context, cfg engine.Config, embedder vector.Embedder) (*vector.Index, error) {
	articles, err := kb.LoadArticles(cfg.KBPath)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	chunks := kb.ChunkArticles(articles, cfg.ChunkSize, cfg.ChunkOverlap)
	common.Logger().Info("main: chunked knowledge base", "articles", len(articles), "chunks", len(chunks))
	index, err := vector.Build(ctx, chunks, embedder)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := index.Persist(cfg.IndexPath); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}
	return index, nil
}

// loadOrBuildIndex prefers the persisted index and falls back to a fresh
// build only when nothing has been persisted yet. A corrupt bundle is an
// error rather than a silent rebuild so an operator can inspect it.
func loadOrBuildIndex(ctx context.Context, cfg engine.Config, embedder vector.Embedder) (*vector.Index, error) {
	index, err := vector.Load(cfg.IndexPath)
	if err == nil {
		common.Logger().Info("main: loaded persisted index", "path", cfg.IndexPath, "chunks", len(index.Chunks()))
		return index, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	common.Logger().Info("main: no persisted index; building", "path", cfg.IndexPath)
	return buildIndex(ctx, cfg, embedder)
}
