package store

import (
	"database/sql"
	"time"
)

// Position is one open holding. At most one row exists per symbol; a row
// whose quantity would reach zero is deleted instead of kept.
type Position struct {
	Symbol      string    `json:"symbol"`
	Quantity    float64   `json:"quantity"`
	AverageCost float64   `json:"average_cost"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Position returns the open position for symbol, or ErrNotFound.
func (s *Store) Position(symbol string) (Position, error) {
	var p Position
	err := s.db.QueryRow(`
		SELECT symbol, quantity, average_cost, updated_at
		FROM positions
		WHERE symbol = ?`, symbol).
		Scan(&p.Symbol, &p.Quantity, &p.AverageCost, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Position{}, ErrNotFound
	}
	return p, err
}

// Positions returns every open position ordered by symbol.
func (s *Store) Positions() ([]Position, error) {
	rows, err := s.db.Query(`
		SELECT symbol, quantity, average_cost, updated_at
		FROM positions
		ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.Symbol, &p.Quantity, &p.AverageCost, &p.UpdatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// UpsertPosition creates or replaces the position row for symbol.
func (s *Store) UpsertPosition(symbol string, quantity, averageCost float64) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO positions (symbol, quantity, average_cost, updated_at)
		VALUES (?, ?, ?, ?)`,
		symbol, quantity, averageCost, time.Now().UTC())
	return err
}

// DeletePosition removes the position row for symbol, if any.
func (s *Store) DeletePosition(symbol string) error {
	_, err := s.db.Exec(`DELETE FROM positions WHERE symbol = ?`, symbol)
	return err
}
