package store

import (
	"database/sql"

	"github.com/google/uuid"
)

// CountEvent records one finger-count transition within a session.
type CountEvent struct {
	ID            string
	SessionID     string
	Count         int
	PreviousCount int
	AtMs          int64
}

// EventRepository provides operations on count events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts a count transition for the given session.
func (r *EventRepository) Record(event *CountEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	_, err := r.db.Exec(
		`INSERT INTO count_events (id, session_id, count, previous_count, at_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.SessionID, event.Count, event.PreviousCount, event.AtMs,
	)
	return err
}

// ListBySession retrieves a session's count events in chronological order.
func (r *EventRepository) ListBySession(sessionID string) ([]*CountEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, count, previous_count, at_ms
		 FROM count_events WHERE session_id = ? ORDER BY at_ms, rowid`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*CountEvent
	for rows.Next() {
		event := &CountEvent{}
		if err := rows.Scan(&event.ID, &event.SessionID, &event.Count, &event.PreviousCount, &event.AtMs); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
