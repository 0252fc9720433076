package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/handcount/internal/store"
)

// EventsHandler handles HTTP requests for a session's count events.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID            string `json:"id"`
	Count         int    `json:"count"`
	PreviousCount int    `json:"previous_count"`
	AtMs          int64  `json:"at_ms"`
}

type listEventsResponse struct {
	SessionID string          `json:"session_id"`
	Events    []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/sessions/{id}/events.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Expected path: /api/sessions/{id}/events
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID := strings.TrimSuffix(path, "/events")
	if sessionID == "" || sessionID == path {
		writeError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	// Verify the session exists so a missing one is a 404, not an empty list
	if _, err := h.store.Sessions().GetByID(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		SessionID: sessionID,
		Events:    make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:            e.ID,
			Count:         e.Count,
			PreviousCount: e.PreviousCount,
			AtMs:          e.AtMs,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
