// Package events appends session lifecycle events to the event_log table.
// The log is write-only from the server's point of view; it exists for
// offline inspection and future sync, and a failed append never affects the
// session.
package events

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeSessionStarted   = "SessionStarted"
	TypeAnswerSelected   = "AnswerSelected"
	TypeSessionSubmitted = "SessionSubmitted"
	TypeSessionRestarted = "SessionRestarted"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string // session id
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = "local"
	}
	if e.DataJSON == "" {
		e.DataJSON = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.SiteID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
