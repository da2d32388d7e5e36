package store

import (
	"database/sql"

	"github.com/rustyeddy/paperdesk/market"
)

const dateLayout = "2006-01-02"

// UpsertBar writes one daily bar, replacing any existing row for the same
// (symbol, date). Imports are idempotent: latest known value wins.
func (s *Store) UpsertBar(b market.Bar) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO market_data
		(symbol, date, open, high, low, close, adjusted_close, volume, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Symbol, b.Date.Format(dateLayout),
		b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume, b.Source,
	)
	return err
}

// Bars returns up to count of the most recent daily bars for symbol in
// ascending date order. Sparse history returns a shorter slice, never an
// error.
func (s *Store) Bars(symbol string, count int) ([]market.Bar, error) {
	rows, err := s.db.Query(`
		SELECT symbol, date, open, high, low, close, adjusted_close, volume, source
		FROM market_data
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT ?`, symbol, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []market.Bar
	for rows.Next() {
		var b market.Bar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.AdjClose, &b.Volume, &b.Source); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first so LIMIT picks the most recent window; callers
	// want ascending dates.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// LatestClose returns the most recent stored close for symbol, or
// ErrNotFound when the symbol has no bars at all.
func (s *Store) LatestClose(symbol string) (float64, error) {
	var c float64
	err := s.db.QueryRow(`
		SELECT close FROM market_data
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT 1`, symbol).Scan(&c)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return c, err
}
