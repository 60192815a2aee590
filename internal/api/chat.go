package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxQueryLength = 500

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Query     string `json:"query"`
	Response  string `json:"response"`
	Category  string `json:"category"`
	SessionID string `json:"session_id"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg, ok := validateQuery(req.Query); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	// The session id is an opaque passthrough; it never loads prior
	// state. Generate one so clients can correlate their own turns.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	st := s.workflow.Run(r.Context(), req.Query, sessionID)
	if st.Response == "" {
		// The workflow guarantees a non-empty response; reaching this
		// means an internal invariant broke.
		s.logger.Error("workflow returned empty response", "session_id", sessionID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Query:     st.Query,
		Response:  st.Response,
		Category:  string(st.Category),
		SessionID: sessionID,
	})
}

func validateQuery(query string) (string, bool) {
	if strings.TrimSpace(query) == "" {
		return "query is required", false
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return "query exceeds 500 characters", false
	}
	return "", true
}
