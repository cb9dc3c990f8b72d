package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateSession records the start of a run and returns its ID
func (d *DB) CreateSession(model, configPath string) (*Session, error) {
	host, _ := os.Hostname()
	s := &Session{
		ID:         uuid.NewString(),
		Model:      model,
		ConfigPath: configPath,
		Hostname:   host,
		StartedAt:  time.Now().UTC(),
	}

	_, err := d.conn.Exec(`
		INSERT INTO sessions (id, model, config_path, hostname, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Model, s.ConfigPath, s.Hostname, s.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetSession returns a session by ID, nil when absent
func (d *DB) GetSession(id string) (*Session, error) {
	var s Session
	var model, configPath, host sql.NullString

	err := d.conn.QueryRow(`
		SELECT id, model, config_path, hostname, started_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&s.ID, &model, &configPath, &host, &s.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	s.Model = model.String
	s.ConfigPath = configPath.String
	s.Hostname = host.String
	return &s, nil
}

// RecordTransition logs a check moving from oldStatus to newStatus.
// oldStatus is empty for the first observation in a session.
func (d *DB) RecordTransition(sessionID, check, oldStatus, newStatus, detail string) error {
	var old sql.NullString
	if oldStatus != "" {
		old = sql.NullString{String: oldStatus, Valid: true}
	}

	_, err := d.conn.Exec(`
		INSERT INTO check_events (session_id, check_name, old_status, new_status, detail, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, check, old, newStatus, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	return nil
}

// GetRecentEvents returns the most recent events across all sessions
func (d *DB) GetRecentEvents(limit int) ([]*CheckEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, session_id, check_name, old_status, new_status, detail, timestamp
		FROM check_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventFilter narrows an event query. Empty fields match everything.
type EventFilter struct {
	SessionID string
	CheckName string
	Limit     int
}

// QueryEvents returns events matching every set field of f, newest first
func (d *DB) QueryEvents(f EventFilter) ([]*CheckEvent, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}

	var where []string
	var args []any
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.CheckName != "" {
		where = append(where, "check_name = ?")
		args = append(args, f.CheckName)
	}

	query := `
		SELECT id, session_id, check_name, old_status, new_status, detail, timestamp
		FROM check_events`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY id DESC\n\t\tLIMIT ?"
	args = append(args, f.Limit)

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetSessionEvents returns events for one session, newest first
func (d *DB) GetSessionEvents(sessionID string, limit int) ([]*CheckEvent, error) {
	return d.QueryEvents(EventFilter{SessionID: sessionID, Limit: limit})
}

// GetEventsByCheck returns events for a named check across sessions
func (d *DB) GetEventsByCheck(check string, limit int) ([]*CheckEvent, error) {
	return d.QueryEvents(EventFilter{CheckName: check, Limit: limit})
}

func scanEvents(rows *sql.Rows) ([]*CheckEvent, error) {
	var events []*CheckEvent
	for rows.Next() {
		var event CheckEvent
		var oldStatus, detail sql.NullString

		err := rows.Scan(
			&event.ID, &event.SessionID, &event.CheckName,
			&oldStatus, &event.NewStatus, &detail, &event.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.OldStatus = oldStatus.String
		event.Detail = detail.String

		events = append(events, &event)
	}

	return events, rows.Err()
}
