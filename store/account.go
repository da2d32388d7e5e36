package store

import (
	"database/sql"
	"time"
)

// Account is the paper cash account. Balance changes only inside a
// committed trade transaction or an explicit reset.
type Account struct {
	ID              int64     `json:"id"`
	Balance         float64   `json:"balance"`
	StartingBalance float64   `json:"starting_balance"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EnsureAccount creates the paper account row if it does not exist yet.
// An existing account is left untouched.
func (s *Store) EnsureAccount(id int64, startingBalance float64) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO paper_account (id, balance, starting_balance, updated_at)
		VALUES (?, ?, ?, ?)`,
		id, startingBalance, startingBalance, time.Now().UTC())
	return err
}

// Account returns the paper account, or ErrNotFound.
func (s *Store) Account(id int64) (Account, error) {
	var a Account
	err := s.db.QueryRow(`
		SELECT id, balance, starting_balance, updated_at
		FROM paper_account
		WHERE id = ?`, id).
		Scan(&a.ID, &a.Balance, &a.StartingBalance, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Account{}, ErrNotFound
	}
	return a, err
}

// ResetAccount reinitializes the paper account and cascades the wipe in a
// single transaction: every position and every paper trade-log row is
// deleted, and balance and starting balance are both set to
// startingBalance. Destructive and irreversible.
func (s *Store) ResetAccount(id int64, startingBalance float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM positions`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM trades WHERE paper_trade = 1 AND account_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		UPDATE paper_account
		SET balance = ?, starting_balance = ?, updated_at = ?
		WHERE id = ?`,
		startingBalance, startingBalance, time.Now().UTC(), id); err != nil {
		return err
	}

	return tx.Commit()
}
