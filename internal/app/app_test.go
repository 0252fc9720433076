package app

import (
	"path/filepath"
	"testing"

	"github.com/ayusman/handcount/internal/landmark"
	"github.com/ayusman/handcount/internal/store"
)

func TestApp_ProcessHands_CountTransitions(t *testing.T) {
	a := New(Config{})

	var notified []int
	a.RegisterCountCallback(func(count int) {
		notified = append(notified, count)
	})

	frames := [][]landmark.Hand{
		{landmark.FistHand()},
		{landmark.OpenPalmHand()},
		{landmark.OpenPalmHand()},
		{landmark.PointingHand()},
		nil, // hand left the frame
	}
	for _, hands := range frames {
		a.ProcessFrame(hands)
	}

	want := []int{5, 1, 0}
	if len(notified) != len(want) {
		t.Fatalf("got notifications %v, want %v", notified, want)
	}
	for i := range want {
		if notified[i] != want[i] {
			t.Errorf("notification %d = %d, want %d", i, notified[i], want[i])
		}
	}
}

func TestApp_ProcessHands_PublishesSnapshot(t *testing.T) {
	a := New(Config{})

	a.ProcessFrame([]landmark.Hand{landmark.PointingHand()})

	snap := a.Snapshot()
	if snap.Count != 1 {
		t.Errorf("snapshot count = %d, want 1", snap.Count)
	}
	if !snap.Extended["index"] {
		t.Error("snapshot should mark the index finger extended")
	}

	a.ProcessFrame(nil)

	snap = a.Snapshot()
	if snap.Count != 0 {
		t.Errorf("snapshot count after clear = %d, want 0", snap.Count)
	}
	if snap.Wrist != nil {
		t.Error("snapshot wrist should be absent after clear")
	}
}

func TestApp_ProcessHands_PicksHighestScoreHand(t *testing.T) {
	a := New(Config{})

	low := landmark.FistHand()
	low.Score = 0.6
	high := landmark.OpenPalmHand()
	high.Score = 0.9

	a.ProcessFrame([]landmark.Hand{low, high})

	if got := a.Snapshot().Count; got != 5 {
		t.Errorf("snapshot count = %d, want 5 from the higher-score hand", got)
	}
}

func TestApp_CountChangeRecordsEvents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	a := New(Config{Store: s})

	// Open a session by hand; Start() would also open the camera.
	session, err := a.BeginSession()
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}

	a.ProcessFrame([]landmark.Hand{landmark.OpenPalmHand()})
	a.ProcessFrame([]landmark.Hand{landmark.PointingHand()})
	a.ProcessFrame(nil)

	events, err := s.Events().ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}

	wantCounts := []int{5, 1, 0}
	if len(events) != len(wantCounts) {
		t.Fatalf("got %d events, want %d", len(events), len(wantCounts))
	}

	previous := 0
	for i, want := range wantCounts {
		if events[i].Count != want {
			t.Errorf("event %d count = %d, want %d", i, events[i].Count, want)
		}
		if events[i].PreviousCount != previous {
			t.Errorf("event %d previous = %d, want %d", i, events[i].PreviousCount, previous)
		}
		previous = want
	}
}

func TestApp_SetEnabled(t *testing.T) {
	a := New(Config{})

	if a.IsEnabled() {
		t.Error("tracking should be disabled by default")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("tracking should be enabled after SetEnabled(true)")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("tracking should be disabled after SetEnabled(false)")
	}
}

func TestApp_SetDetector(t *testing.T) {
	a := New(Config{})

	mock := landmark.NewMockDetector()
	a.SetDetector(mock)

	if a.Detector() != landmark.Detector(mock) {
		t.Error("Detector() should return the detector set via SetDetector")
	}
}
