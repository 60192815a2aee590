// Command ingest loads the knowledge base file, chunks and embeds it,
// and writes the result into the pgvector index. Run it offline before
// starting the server against a database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/TechGear-Labs/concierge/internal/config"
	"github.com/TechGear-Labs/concierge/internal/gemini"
	"github.com/TechGear-Labs/concierge/internal/index"
	"github.com/TechGear-Labs/concierge/internal/knowledge"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel)

	text, err := knowledge.Load(cfg.KnowledgePath)
	if err != nil {
		slog.Error("failed to load knowledge base", "path", cfg.KnowledgePath, "error", err)
		os.Exit(1)
	}

	pg, err := index.NewPGStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	// Probe the embedding dimension before creating the vector column.
	probe, err := llm.EmbedContent(ctx, "dimension probe")
	if err != nil {
		slog.Error("failed to probe embedding dimension", "error", err)
		os.Exit(1)
	}
	if err := pg.EnsureSchema(ctx, len(probe)); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	n, err := knowledge.Ingest(ctx, knowledge.NewChunker(0, 0), llm, pg, cfg.KnowledgePath, text, slog.Default())
	if err != nil {
		slog.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ingestion complete", "chunks", n, "dimension", len(probe))
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
