package store

import "time"

// SignalRecord is one persisted signal-log row. The log is an audit trail
// of past scans; nothing reads it back to drive decisions.
type SignalRecord struct {
	Symbol    string    `json:"symbol"`
	Type      string    `json:"signal_type"`
	Indicator string    `json:"indicator"`
	Strength  float64   `json:"strength"`
	Date      time.Time `json:"date"`
}

// SaveSignals appends every record as a new row. There is no dedup or
// upsert: rescanning the same symbol on the same day writes duplicates.
func (s *Store) SaveSignals(recs []SignalRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO signals (symbol, signal_type, indicator, strength, date)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err := stmt.Exec(r.Symbol, r.Type, r.Indicator, r.Strength, r.Date.Format(dateLayout)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SignalHistory returns up to limit logged signals for symbol, most recent
// first.
func (s *Store) SignalHistory(symbol string, limit int) ([]SignalRecord, error) {
	rows, err := s.db.Query(`
		SELECT symbol, signal_type, indicator, strength, date
		FROM signals
		WHERE symbol = ?
		ORDER BY date DESC, id DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []SignalRecord
	for rows.Next() {
		var r SignalRecord
		if err := rows.Scan(&r.Symbol, &r.Type, &r.Indicator, &r.Strength, &r.Date); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
