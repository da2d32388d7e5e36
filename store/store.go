// Package store is the SQLite persistence layer for the desk: market bars,
// the position ledger, the paper account, the trade log, the signal log and
// the watchlist.
package store

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// DefaultAccountID is the single paper account created at initialization.
// The account ID is threaded through every call so a second account is a
// config change, not a schema change.
const DefaultAccountID int64 = 1

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
