package store

import "time"

// Trade is one committed trade-log entry. Rows are append-only: never
// mutated or deleted outside an account reset.
type Trade struct {
	TradeID      string    `json:"trade_id"`
	AccountID    int64     `json:"account_id"`
	Symbol       string    `json:"symbol"`
	Action       string    `json:"action"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	BalanceAfter float64   `json:"balance_after"`
	PaperTrade   bool      `json:"paper_trade"`
	Timestamp    time.Time `json:"timestamp"`
}

// TradeApplication is the full effect of one committed order: the new cash
// balance, the resulting position (nil deletes the row) and the trade-log
// entry itself.
type TradeApplication struct {
	Trade      Trade
	NewBalance float64
	Position   *Position // nil means the sell emptied the position
}

// ApplyTrade commits the three side effects of a trade in one transaction
// so a crash can never leave the balance and the ledger disagreeing.
func (s *Store) ApplyTrade(app TradeApplication) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t := app.Trade

	if _, err := tx.Exec(`
		UPDATE paper_account SET balance = ?, updated_at = ? WHERE id = ?`,
		app.NewBalance, t.Timestamp, t.AccountID); err != nil {
		return err
	}

	if app.Position != nil {
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO positions (symbol, quantity, average_cost, updated_at)
			VALUES (?, ?, ?, ?)`,
			app.Position.Symbol, app.Position.Quantity, app.Position.AverageCost, t.Timestamp); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(`DELETE FROM positions WHERE symbol = ?`, t.Symbol); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO trades
		(trade_id, account_id, symbol, action, quantity, price, balance_after, paper_trade, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.AccountID, t.Symbol, t.Action, t.Quantity, t.Price,
		t.BalanceAfter, t.PaperTrade, t.Timestamp); err != nil {
		return err
	}

	return tx.Commit()
}

// TradeHistory returns up to limit paper trades for the account, most
// recent first. ULID trade IDs break timestamp ties in commit order.
func (s *Store) TradeHistory(accountID int64, limit int) ([]Trade, error) {
	rows, err := s.db.Query(`
		SELECT trade_id, account_id, symbol, action, quantity, price, balance_after, paper_trade, timestamp
		FROM trades
		WHERE paper_trade = 1 AND account_id = ?
		ORDER BY timestamp DESC, trade_id DESC
		LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var t Trade
		if err := rows.Scan(&t.TradeID, &t.AccountID, &t.Symbol, &t.Action, &t.Quantity,
			&t.Price, &t.BalanceAfter, &t.PaperTrade, &t.Timestamp); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
