package store

import (
	"database/sql"
	"time"
)

// WatchlistEntry is a symbol the user keeps an eye on without holding it.
type WatchlistEntry struct {
	Symbol  string    `json:"symbol"`
	Notes   string    `json:"notes,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// AddToWatchlist inserts symbol into the watchlist. Adding a symbol that is
// already watched is a no-op.
func (s *Store) AddToWatchlist(symbol, notes string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO watchlist (symbol, notes, added_at)
		VALUES (?, ?, ?)`,
		symbol, notes, time.Now().UTC())
	return err
}

func (s *Store) RemoveFromWatchlist(symbol string) error {
	_, err := s.db.Exec(`DELETE FROM watchlist WHERE symbol = ?`, symbol)
	return err
}

// Watchlist returns every watched symbol ordered by symbol.
func (s *Store) Watchlist() ([]WatchlistEntry, error) {
	rows, err := s.db.Query(`SELECT symbol, notes, added_at FROM watchlist ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []WatchlistEntry
	for rows.Next() {
		var (
			e     WatchlistEntry
			notes sql.NullString
		)
		if err := rows.Scan(&e.Symbol, &notes, &e.AddedAt); err != nil {
			return nil, err
		}
		e.Notes = notes.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
