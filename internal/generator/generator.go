// Package generator turns retrieved context and a query into a grounded
// answer via the generation model. The prompt instructs the model to
// answer only from the provided context; that instruction is the only
// grounding guarantee there is.
package generator

import (
	"context"
	"log/slog"

	"github.com/TechGear-Labs/concierge/internal/escalation"
)

const (
	temperature = 0.3
	maxTokens   = 512
)

// Fallback is returned whenever retrieval or generation fails. The
// request still succeeds from the client's point of view.
const Fallback = "I apologize, but I encountered an error processing your request. " +
	"Please try again or contact our support team at " + escalation.SupportEmail + "."

// TextGenerator is the generation side of the model provider.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

type Generator struct {
	llm    TextGenerator
	logger *slog.Logger
}

func New(llm TextGenerator, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, logger: logger}
}

// Generate produces an answer grounded in the given snippets. It never
// returns an error: on model failure or an empty result it falls back to
// the fixed apology so the workflow always completes with a response.
func (g *Generator) Generate(ctx context.Context, query string, snippets []string) string {
	prompt := buildPrompt(query, snippets)

	answer, err := g.llm.GenerateContent(ctx, prompt, temperature, maxTokens)
	if err != nil {
		g.logger.Error("generation failed", "error", err)
		return Fallback
	}
	if answer == "" {
		g.logger.Error("generation returned empty answer")
		return Fallback
	}

	g.logger.Debug("answer generated", "snippets", len(snippets), "answer_len", len(answer))
	return answer
}
