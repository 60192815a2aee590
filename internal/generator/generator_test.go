package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/TechGear-Labs/concierge/internal/escalation"
)

type stubLLM struct {
	answer    string
	err       error
	gotPrompt string
	gotTemp   float64
	gotTokens int
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	s.gotPrompt = prompt
	s.gotTemp = temperature
	s.gotTokens = maxTokens
	return s.answer, s.err
}

func TestGenerate(t *testing.T) {
	llm := &stubLLM{answer: "The SmartWatch Pro X is priced at 15,999 rupees."}
	g := New(llm, slog.Default())

	snippets := []string{"SmartWatch Pro X Price: 15,999", "1 year warranty"}
	answer := g.Generate(context.Background(), "What is the price of SmartWatch Pro X?", snippets)

	if answer != llm.answer {
		t.Errorf("expected model answer, got %q", answer)
	}
	if llm.gotTemp != 0.3 {
		t.Errorf("expected temperature 0.3, got %g", llm.gotTemp)
	}
	if llm.gotTokens != 512 {
		t.Errorf("expected max tokens 512, got %d", llm.gotTokens)
	}
	for _, want := range []string{
		"What is the price of SmartWatch Pro X?",
		"[Source 1]\nSmartWatch Pro X Price: 15,999",
		"[Source 2]\n1 year warranty",
		"Answer ONLY based on the provided context",
	} {
		if !strings.Contains(llm.gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerate_NoContext(t *testing.T) {
	llm := &stubLLM{answer: "I don't have that information in my knowledge base"}
	g := New(llm, slog.Default())

	g.Generate(context.Background(), "query", nil)

	if !strings.Contains(llm.gotPrompt, "No relevant information found.") {
		t.Errorf("prompt should carry the empty-context marker, got %q", llm.gotPrompt)
	}
}

func TestGenerate_ModelFailure(t *testing.T) {
	g := New(&stubLLM{err: fmt.Errorf("api error 500")}, slog.Default())

	answer := g.Generate(context.Background(), "query", []string{"context"})
	if answer != Fallback {
		t.Errorf("expected fallback, got %q", answer)
	}
	if !strings.Contains(answer, escalation.SupportEmail) {
		t.Errorf("fallback must name the support contact, got %q", answer)
	}
}

func TestGenerate_EmptyAnswer(t *testing.T) {
	g := New(&stubLLM{answer: ""}, slog.Default())

	if answer := g.Generate(context.Background(), "query", []string{"context"}); answer != Fallback {
		t.Errorf("expected fallback on empty answer, got %q", answer)
	}
}
