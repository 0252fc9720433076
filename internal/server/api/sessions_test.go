package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/handcount/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	t.Run("empty store returns empty list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var response listSessionsResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Sessions) != 0 {
			t.Errorf("got %d sessions, want 0", len(response.Sessions))
		}
	})

	t.Run("lists created sessions", func(t *testing.T) {
		if _, err := s.Sessions().Create(); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := s.Sessions().Create(); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		var response listSessionsResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Sessions) != 2 {
			t.Errorf("got %d sessions, want 2", len(response.Sessions))
		}
	})
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	session, err := s.Sessions().Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var response sessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.ID != session.ID {
			t.Errorf("ID = %q, want %q", response.ID, session.ID)
		}
		if response.EndedAt != nil {
			t.Error("running session should not have ended_at")
		}
	})

	t.Run("missing session returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-id", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestSessionHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	session, err := s.Sessions().Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+session.ID, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	if _, err := s.Sessions().GetByID(session.ID); err != store.ErrNotFound {
		t.Errorf("session should be gone after delete, got err = %v", err)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodPost, path: "/api/sessions"},
		{method: http.MethodPut, path: "/api/sessions/some-id"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestEventsHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewEventsHandler(s)

	session, err := s.Sessions().Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i, count := range []int{2, 0, 4} {
		err := s.Events().Record(&store.CountEvent{
			SessionID:     session.ID,
			Count:         count,
			PreviousCount: 0,
			AtMs:          int64(1000 * (i + 1)),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	t.Run("lists events in order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/events", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var response listEventsResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.SessionID != session.ID {
			t.Errorf("session_id = %q, want %q", response.SessionID, session.ID)
		}
		if len(response.Events) != 3 {
			t.Fatalf("got %d events, want 3", len(response.Events))
		}
		for i, want := range []int{2, 0, 4} {
			if response.Events[i].Count != want {
				t.Errorf("event %d count = %d, want %d", i, response.Events[i].Count, want)
			}
		}
	})

	t.Run("missing session returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-id/events", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("only GET is allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+session.ID+"/events", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}
