package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/TechGear-Labs/concierge/internal/api"
	"github.com/TechGear-Labs/concierge/internal/config"
	"github.com/TechGear-Labs/concierge/internal/events"
	"github.com/TechGear-Labs/concierge/internal/gemini"
	"github.com/TechGear-Labs/concierge/internal/generator"
	"github.com/TechGear-Labs/concierge/internal/index"
	"github.com/TechGear-Labs/concierge/internal/knowledge"
	"github.com/TechGear-Labs/concierge/internal/retriever"
	"github.com/TechGear-Labs/concierge/internal/workflow"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("concierge starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Gemini client: generation and embeddings
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel)
	slog.Info("gemini client ready", "model", cfg.GeminiModel, "embed_model", cfg.EmbeddingModel)

	// Knowledge index: pgvector when a database is configured,
	// otherwise an in-memory index built from the knowledge file.
	var idx index.Index
	if cfg.DatabaseURL != "" {
		pg, err := index.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		idx = pg
		slog.Info("pgvector index connected")
	} else {
		mem := index.NewMemory()
		text, err := knowledge.Load(cfg.KnowledgePath)
		if err != nil {
			slog.Warn("knowledge base unavailable, retrieval will degrade", "path", cfg.KnowledgePath, "error", err)
		} else {
			n, err := knowledge.Ingest(ctx, knowledge.NewChunker(0, 0), llm, mem, cfg.KnowledgePath, text, slog.Default())
			if err != nil {
				slog.Error("failed to build in-memory index", "error", err)
				os.Exit(1)
			}
			slog.Info("in-memory index built", "chunks", n)
		}
		idx = mem
	}

	// NATS telemetry (optional, concierge works without it)
	var pub *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		pub, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without support telemetry")
	}

	ret := retriever.New(llm, idx, slog.Default())
	gen := generator.New(llm, slog.Default())

	var wfEvents workflow.EventPublisher
	if pub != nil {
		wfEvents = pub
	}
	wf := workflow.New(ret, gen, wfEvents, cfg.RetrievalTopK, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, wf, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if pub != nil {
		if err := pub.Publish(events.SubjectRegistered, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("concierge ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("concierge stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
