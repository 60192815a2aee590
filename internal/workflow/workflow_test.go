package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/TechGear-Labs/concierge/internal/classifier"
	"github.com/TechGear-Labs/concierge/internal/escalation"
	"github.com/TechGear-Labs/concierge/internal/generator"
	"github.com/TechGear-Labs/concierge/internal/retriever"
)

type stubRetriever struct {
	snippets []string
	err      error
	calls    int
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	s.calls++
	return s.snippets, s.err
}

type stubGenerator struct {
	answer      string
	calls       int
	gotSnippets []string
}

func (s *stubGenerator) Generate(ctx context.Context, query string, snippets []string) string {
	s.calls++
	s.gotSnippets = snippets
	return s.answer
}

type recordingPublisher struct {
	subjects []string
	payloads []any
}

func (r *recordingPublisher) Publish(subject string, data any) error {
	r.subjects = append(r.subjects, subject)
	r.payloads = append(r.payloads, data)
	return nil
}

func TestRun_ProductQueryUsesRetrieval(t *testing.T) {
	ret := &stubRetriever{snippets: []string{"SmartWatch Pro X Price: 15,999"}}
	gen := &stubGenerator{answer: "The SmartWatch Pro X is priced at 15,999 rupees."}
	c := New(ret, gen, nil, 3, slog.Default())

	st := c.Run(context.Background(), "What is the price of SmartWatch Pro X?", "sess-1")

	if st.Category != classifier.CategoryProduct {
		t.Errorf("expected product category, got %q", st.Category)
	}
	if ret.calls != 1 || gen.calls != 1 {
		t.Errorf("expected one retrieve and one generate call, got %d/%d", ret.calls, gen.calls)
	}
	if len(gen.gotSnippets) != 1 {
		t.Errorf("generator should receive the retrieved context, got %v", gen.gotSnippets)
	}
	if st.Response == "" {
		t.Error("response must be non-empty")
	}
	if st.Escalated || st.Degraded {
		t.Errorf("unexpected flags: %+v", st)
	}
}

func TestRun_ReturnsQueryUsesRetrieval(t *testing.T) {
	ret := &stubRetriever{snippets: []string{"7-day return policy"}}
	gen := &stubGenerator{answer: "We offer a 7-day no-questions-asked return policy."}
	c := New(ret, gen, nil, 3, slog.Default())

	st := c.Run(context.Background(), "Explain the return policy", "sess-2")

	if st.Category != classifier.CategoryReturns {
		t.Errorf("expected returns category, got %q", st.Category)
	}
	if ret.calls != 1 {
		t.Error("returns queries route to retrieval, not escalation")
	}
	if st.Escalated {
		t.Error("returns queries must not escalate")
	}
}

func TestRun_GeneralQueryEscalates(t *testing.T) {
	ret := &stubRetriever{}
	gen := &stubGenerator{answer: "unused"}
	c := New(ret, gen, nil, 3, slog.Default())

	st := c.Run(context.Background(), "Hello, how are you?", "sess-3")

	if st.Category != classifier.CategoryGeneral {
		t.Errorf("expected general category, got %q", st.Category)
	}
	if ret.calls != 0 || gen.calls != 0 {
		t.Errorf("escalation path must not touch retrieval or generation, got %d/%d", ret.calls, gen.calls)
	}
	if !st.Escalated {
		t.Error("expected escalated flag")
	}
	if st.Response != escalation.Respond() {
		t.Errorf("response must equal the fixed escalation message, got %q", st.Response)
	}
	if st.Context != nil {
		t.Errorf("context must stay absent on the escalation path, got %v", st.Context)
	}
}

func TestRun_RetrievalFailureDegrades(t *testing.T) {
	ret := &stubRetriever{err: fmt.Errorf("%w: index down", retriever.ErrRetrieval)}
	gen := &stubGenerator{answer: "unused"}
	c := New(ret, gen, nil, 3, slog.Default())

	st := c.Run(context.Background(), "What is the price of the smartwatch?", "sess-4")

	if gen.calls != 0 {
		t.Error("generator must not run when retrieval failed")
	}
	if !st.Degraded {
		t.Error("expected degraded flag")
	}
	if st.Response != generator.Fallback {
		t.Errorf("expected fixed fallback, got %q", st.Response)
	}
	if !strings.Contains(st.Response, escalation.SupportEmail) {
		t.Errorf("fallback must name the support contact, got %q", st.Response)
	}
}

// Every input produces exactly one terminal step and a non-empty
// response.
func TestRun_AlwaysAnswers(t *testing.T) {
	queries := []string{
		"What is the price of SmartWatch Pro X?",
		"Explain the return policy",
		"Hello, how are you?",
		"",
		"   ",
	}

	for _, query := range queries {
		ret := &stubRetriever{snippets: []string{"snippet"}}
		gen := &stubGenerator{answer: "an answer"}
		c := New(ret, gen, nil, 3, slog.Default())

		st := c.Run(context.Background(), query, "sess")
		if st.Response == "" {
			t.Errorf("empty response for query %q", query)
		}
		terminal := 0
		if st.Escalated {
			terminal++
		}
		if gen.calls > 0 || st.Degraded {
			terminal++
		}
		if terminal != 1 {
			t.Errorf("expected exactly one terminal step for %q, got %d", query, terminal)
		}
	}
}

func TestRun_PublishesEvents(t *testing.T) {
	pub := &recordingPublisher{}
	c := New(&stubRetriever{snippets: []string{"s"}}, &stubGenerator{answer: "a"}, pub, 3, slog.Default())

	c.Run(context.Background(), "price of smartwatch", "sess-5")
	c.Run(context.Background(), "hello there", "sess-6")

	if len(pub.subjects) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.subjects))
	}
	if pub.subjects[0] != "support.query.answered" {
		t.Errorf("expected answered subject, got %q", pub.subjects[0])
	}
	if pub.subjects[1] != "support.escalation.requested" {
		t.Errorf("expected escalation subject, got %q", pub.subjects[1])
	}
}

func TestRun_NilPublisher(t *testing.T) {
	c := New(&stubRetriever{snippets: []string{"s"}}, &stubGenerator{answer: "a"}, nil, 3, slog.Default())

	// Must not panic without telemetry wired.
	st := c.Run(context.Background(), "price of smartwatch", "sess-7")
	if st.Response == "" {
		t.Error("response must be non-empty")
	}
}
