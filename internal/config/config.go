package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	NatsURL        string
	NatsToken      string
	LogLevel       string
	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string
	KnowledgePath  string
	RetrievalTopK  int
}

func Load() Config {
	return Config{
		Port:           envInt("CONCIERGE_PORT", 8770),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		NatsURL:        envStr("NATS_URL", ""),
		NatsToken:      envStr("NATS_TOKEN", ""),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:   envStr("GEMINI_API_KEY", ""),
		GeminiModel:    envStr("CONCIERGE_MODEL", "gemini-2.0-flash"),
		EmbeddingModel: envStr("CONCIERGE_EMBED_MODEL", "embedding-001"),
		KnowledgePath:  envStr("KNOWLEDGE_PATH", "data/knowledge_base/product_info.txt"),
		RetrievalTopK:  envInt("CONCIERGE_TOP_K", 3),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
