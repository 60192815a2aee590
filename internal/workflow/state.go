package workflow

import "github.com/TechGear-Labs/concierge/internal/classifier"

// State is the conversation state for one request. It is created per
// request, flows through exactly one classify step and one terminal
// step, and is discarded once the response is returned. There is no
// cross-request memory; the session id is an opaque passthrough.
type State struct {
	// Query is immutable once set.
	Query string
	// Category is written once by the classify step.
	Category classifier.Category
	// Context holds retrieved snippets; nil when the query never hit
	// the retrieval path.
	Context []string
	// Response is written exactly once by whichever terminal step ran.
	// Non-empty on every exit.
	Response string
	// Escalated reports that the human-handoff path produced Response.
	Escalated bool
	// Degraded reports that retrieval failed and Response is the fixed
	// fallback rather than a generated answer.
	Degraded bool
}
