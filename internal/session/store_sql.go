package session

import (
	"database/sql"
	"errors"
	"time"
)

// SQLKV persists session state in the session_state table, one row per
// (session, key). Works against sqlite and postgres; placeholders follow the
// $n convention both drivers accept.
type SQLKV struct {
	db *sql.DB
}

func NewSQLKV(db *sql.DB) *SQLKV { return &SQLKV{db: db} }

// Session returns a Store scoped to one session id.
func (s *SQLKV) Session(id string) Store {
	return &scopedStore{db: s.db, sid: id}
}

type scopedStore struct {
	db  *sql.DB
	sid string
}

func (s *scopedStore) Get(key string) (string, bool, error) {
	row := s.db.QueryRow(`SELECT value FROM session_state WHERE session_id=$1 AND key=$2`, s.sid, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *scopedStore) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO session_state (session_id,key,value,updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (session_id,key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at`,
		s.sid, key, value, time.Now().Unix())
	return err
}

func (s *scopedStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session_state WHERE session_id=$1 AND key=$2`, s.sid, key)
	return err
}
