package paper

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/paperdesk/store"
)

// PerformanceSnapshot is a point-in-time view of account performance.
// No equity curve is kept; every call recomputes from current state.
type PerformanceSnapshot struct {
	StartingBalance float64 `json:"starting_balance"`
	CashBalance     float64 `json:"cash_balance"`
	PositionsValue  float64 `json:"positions_value"`
	TotalValue      float64 `json:"total_value"`
	TotalReturn     float64 `json:"total_return"`
	ReturnPct       float64 `json:"return_pct"`
	NumPositions    int     `json:"num_positions"`
}

// Performance values every open position at the latest close (falling back
// to average cost when a symbol has no quote yet) and derives total return
// against the starting balance.
func (e *Engine) Performance() (PerformanceSnapshot, error) {
	acct, err := e.store.Account(e.accountID)
	if err != nil {
		return PerformanceSnapshot{}, err
	}

	positions, err := e.store.Positions()
	if err != nil {
		return PerformanceSnapshot{}, err
	}

	var positionsValue float64
	for _, p := range positions {
		price, err := e.store.LatestClose(p.Symbol)
		if errors.Is(err, store.ErrNotFound) {
			// Valuing at cost degrades the unrealized P&L to zero instead
			// of failing the whole snapshot.
			e.logger.Warn("no price data, valuing position at average cost", "symbol", p.Symbol)
			price = p.AverageCost
		} else if err != nil {
			return PerformanceSnapshot{}, err
		}
		positionsValue += p.Quantity * price
	}

	totalValue := acct.Balance + positionsValue
	totalReturn := totalValue - acct.StartingBalance
	returnPct := 0.0
	if acct.StartingBalance > 0 {
		returnPct = totalReturn / acct.StartingBalance * 100
	}

	return PerformanceSnapshot{
		StartingBalance: acct.StartingBalance,
		CashBalance:     acct.Balance,
		PositionsValue:  positionsValue,
		TotalValue:      totalValue,
		TotalReturn:     totalReturn,
		ReturnPct:       returnPct,
		NumPositions:    len(positions),
	}, nil
}

// Reset wipes the account back to a fresh starting balance: every position
// and every paper trade-log row is deleted. Callers must treat this as
// creating a brand-new account.
func (e *Engine) Reset(startingBalance float64) error {
	if startingBalance <= 0 {
		return fmt.Errorf("starting balance must be positive, got %v", startingBalance)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ResetAccount(e.accountID, startingBalance); err != nil {
		return err
	}

	e.logger.Info("account reset", "starting_balance", startingBalance)
	return nil
}
