package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/handcount/internal/app"
	"github.com/ayusman/handcount/internal/landmark"
	"github.com/ayusman/handcount/internal/server"
	"github.com/ayusman/handcount/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{Store: s})
	application.SetDetector(landmark.NewMockDetector())

	srv := server.New(server.Config{Store: s, Snapshots: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	session, err := application.BeginSession()
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}

	// Drive the pipeline's processing step with a sequence of detection
	// results: open palm, hold, point, hand gone.
	frames := [][]landmark.Hand{
		{landmark.OpenPalmHand()},
		{landmark.OpenPalmHand()},
		{landmark.PointingHand()},
		nil,
	}
	for _, hands := range frames {
		application.ProcessFrame(hands)
	}

	t.Run("CurrentPose", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/pose")
		if err != nil {
			t.Fatalf("get pose error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var snap struct {
			Count    int             `json:"count"`
			Extended map[string]bool `json:"extended"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatalf("decode pose error = %v", err)
		}
		if snap.Count != 0 {
			t.Errorf("count = %d, want 0 after the hand left", snap.Count)
		}
	})

	t.Run("ListSessions", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions")
		if err != nil {
			t.Fatalf("list sessions error = %v", err)
		}
		defer resp.Body.Close()

		var response struct {
			Sessions []struct {
				ID string `json:"id"`
			} `json:"sessions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			t.Fatalf("decode sessions error = %v", err)
		}
		if len(response.Sessions) != 1 {
			t.Fatalf("got %d sessions, want 1", len(response.Sessions))
		}
		if response.Sessions[0].ID != session.ID {
			t.Errorf("session ID = %q, want %q", response.Sessions[0].ID, session.ID)
		}
	})

	t.Run("SessionEvents", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions/" + session.ID + "/events")
		if err != nil {
			t.Fatalf("list events error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var response struct {
			Events []struct {
				Count         int `json:"count"`
				PreviousCount int `json:"previous_count"`
			} `json:"events"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			t.Fatalf("decode events error = %v", err)
		}

		// Transitions: 0 -> 5, 5 -> 1, 1 -> 0
		wantCounts := []int{5, 1, 0}
		if len(response.Events) != len(wantCounts) {
			t.Fatalf("got %d events, want %d", len(response.Events), len(wantCounts))
		}
		for i, want := range wantCounts {
			if response.Events[i].Count != want {
				t.Errorf("event %d count = %d, want %d", i, response.Events[i].Count, want)
			}
		}
	})

	t.Run("DeleteSession", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+session.ID, nil)
		if err != nil {
			t.Fatalf("new request error = %v", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		events, err := s.Events().ListBySession(session.ID)
		if err != nil {
			t.Fatalf("ListBySession() error = %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected events to cascade away, got %d", len(events))
		}
	})
}
