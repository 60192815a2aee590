// Package workflow routes one query through the support pipeline:
// classify, then exactly one of retrieval-augmented generation or the
// fixed escalation reply. Every path ends with a non-empty response;
// collaborator failures degrade the answer, never the request.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/TechGear-Labs/concierge/internal/classifier"
	"github.com/TechGear-Labs/concierge/internal/escalation"
	"github.com/TechGear-Labs/concierge/internal/events"
	"github.com/TechGear-Labs/concierge/internal/generator"
)

// ContextRetriever fetches supporting snippets for a query.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// AnswerGenerator produces a grounded answer; it never fails, only
// degrades to its fallback.
type AnswerGenerator interface {
	Generate(ctx context.Context, query string, snippets []string) string
}

// EventPublisher is satisfied by events.Publisher; nil disables telemetry.
type EventPublisher interface {
	Publish(subject string, data any) error
}

// Controller is an explicitly constructed, immutable workflow. Handlers
// receive it by injection; there is no package-level instance.
type Controller struct {
	retriever ContextRetriever
	generator AnswerGenerator
	events    EventPublisher
	topK      int
	logger    *slog.Logger
}

func New(retriever ContextRetriever, gen AnswerGenerator, pub EventPublisher, topK int, logger *slog.Logger) *Controller {
	if topK <= 0 {
		topK = 3
	}
	return &Controller{
		retriever: retriever,
		generator: gen,
		events:    pub,
		topK:      topK,
		logger:    logger,
	}
}

// Run executes the workflow for one query. Product and returns queries
// go through retrieval and generation; general queries get the fixed
// escalation reply. Retrieval failure is branched on explicitly and
// answered with the generator's fallback.
func (c *Controller) Run(ctx context.Context, query, sessionID string) State {
	st := State{Query: query}
	st.Category = classifier.Classify(query)

	switch st.Category {
	case classifier.CategoryProduct, classifier.CategoryReturns:
		snippets, err := c.retriever.Retrieve(ctx, query, c.topK)
		if err != nil {
			c.logger.Warn("retrieval failed, answering with fallback",
				"category", st.Category,
				"error", err,
			)
			st.Degraded = true
			st.Response = generator.Fallback
			break
		}
		st.Context = snippets
		st.Response = c.generator.Generate(ctx, query, snippets)
	default:
		st.Escalated = true
		st.Response = escalation.Respond()
	}

	c.publish(st, sessionID)

	c.logger.Info("query routed",
		"session_id", sessionID,
		"category", st.Category,
		"escalated", st.Escalated,
		"degraded", st.Degraded,
	)
	return st
}

func (c *Controller) publish(st State, sessionID string) {
	if c.events == nil {
		return
	}
	subject := events.SubjectAnswered
	if st.Escalated {
		subject = events.SubjectEscalated
	}
	evt := events.QueryEvent{
		SessionID: sessionID,
		Category:  string(st.Category),
		Escalated: st.Escalated,
		Degraded:  st.Degraded,
		Timestamp: time.Now().UTC(),
	}
	if err := c.events.Publish(subject, evt); err != nil {
		c.logger.Warn("failed to publish query event", "subject", subject, "error", err)
	}
}
