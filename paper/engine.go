// Package paper is the paper-trading engine: it validates and applies
// BUY/SELL orders against the cash account and the position ledger, and
// reports point-in-time account performance.
package paper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/paperdesk/pkg/id"
	"github.com/rustyeddy/paperdesk/store"
)

const (
	Buy  = "BUY"
	Sell = "SELL"
)

// DefaultStartingBalance seeds a fresh paper account.
const DefaultStartingBalance = 10000.0

// Engine executes paper trades against one account. The mutex serializes
// the read-balance, compute, write sequence: without it two concurrent
// orders could both pass the funds check and double-spend the same cash.
type Engine struct {
	mu        sync.Mutex
	store     *store.Store
	accountID int64
	logger    *slog.Logger
}

func NewEngine(st *store.Store, accountID int64, logger *slog.Logger) *Engine {
	return &Engine{store: st, accountID: accountID, logger: logger}
}

// TradeResult is the outcome of one committed order. Cost is set on BUY,
// Proceeds and the realized P&L fields on SELL.
type TradeResult struct {
	TradeID       string    `json:"trade_id"`
	Action        string    `json:"action"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	Price         float64   `json:"price"`
	Cost          float64   `json:"total_cost,omitempty"`
	Proceeds      float64   `json:"total_proceeds,omitempty"`
	BalanceAfter  float64   `json:"balance_after"`
	RealizedPL    float64   `json:"realized_pl,omitempty"`
	RealizedPLPct float64   `json:"realized_pl_pct,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// PlaceOrder validates and executes a paper BUY or SELL at the latest
// stored close. Orders fill whole shares only; all-or-nothing, no partial
// fills. On success the balance update, the position upsert (or delete)
// and the trade-log insert commit as one transaction.
func (e *Engine) PlaceOrder(ctx context.Context, symbol string, quantity float64, action string) (TradeResult, error) {
	_ = ctx // operations complete synchronously; reserved for storage contexts

	action = strings.ToUpper(action)
	if action != Buy && action != Sell {
		return TradeResult{}, fmt.Errorf("%w: %q", ErrInvalidOrderType, action)
	}
	if quantity <= 0 || quantity != math.Trunc(quantity) {
		return TradeResult{}, fmt.Errorf("%w: %v shares (orders fill a positive whole number of shares)", ErrInvalidQuantity, quantity)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	price, err := e.store.LatestClose(symbol)
	if errors.Is(err, store.ErrNotFound) {
		return TradeResult{}, fmt.Errorf("%w available for %s", ErrNoPriceData, symbol)
	}
	if err != nil {
		return TradeResult{}, err
	}

	acct, err := e.store.Account(e.accountID)
	if err != nil {
		return TradeResult{}, err
	}

	if action == Buy {
		return e.executeBuy(symbol, quantity, price, acct)
	}
	return e.executeSell(symbol, quantity, price, acct)
}

func (e *Engine) executeBuy(symbol string, quantity, price float64, acct store.Account) (TradeResult, error) {
	cost := quantity * price
	if cost > acct.Balance {
		return TradeResult{}, fmt.Errorf("%w: need $%.2f, have $%.2f", ErrInsufficientFunds, cost, acct.Balance)
	}

	// Weighted average cost basis: buys re-weight, sells never touch it.
	pos := store.Position{Symbol: symbol, Quantity: quantity, AverageCost: price}
	existing, err := e.store.Position(symbol)
	switch {
	case err == nil:
		newQty := existing.Quantity + quantity
		pos.Quantity = newQty
		pos.AverageCost = (existing.Quantity*existing.AverageCost + cost) / newQty
	case !errors.Is(err, store.ErrNotFound):
		return TradeResult{}, err
	}

	now := time.Now().UTC()
	newBalance := acct.Balance - cost
	trade := store.Trade{
		TradeID:      id.New(),
		AccountID:    e.accountID,
		Symbol:       symbol,
		Action:       Buy,
		Quantity:     quantity,
		Price:        price,
		BalanceAfter: newBalance,
		PaperTrade:   true,
		Timestamp:    now,
	}

	if err := e.store.ApplyTrade(store.TradeApplication{
		Trade:      trade,
		NewBalance: newBalance,
		Position:   &pos,
	}); err != nil {
		return TradeResult{}, err
	}

	e.logger.Info("buy filled",
		"symbol", symbol,
		"quantity", quantity,
		"price", price,
		"cost", cost,
		"balance", newBalance,
	)

	return TradeResult{
		TradeID:      trade.TradeID,
		Action:       Buy,
		Symbol:       symbol,
		Quantity:     quantity,
		Price:        price,
		Cost:         cost,
		BalanceAfter: newBalance,
		Timestamp:    now,
	}, nil
}

func (e *Engine) executeSell(symbol string, quantity, price float64, acct store.Account) (TradeResult, error) {
	pos, err := e.store.Position(symbol)
	if errors.Is(err, store.ErrNotFound) {
		return TradeResult{}, fmt.Errorf("%w in %s to sell", ErrNoPosition, symbol)
	}
	if err != nil {
		return TradeResult{}, err
	}
	if quantity > pos.Quantity {
		return TradeResult{}, fmt.Errorf("%w: have %v, tried to sell %v", ErrInsufficientShares, pos.Quantity, quantity)
	}

	proceeds := quantity * price
	costBasis := quantity * pos.AverageCost
	realized := proceeds - costBasis
	realizedPct := 0.0
	if costBasis > 0 {
		realizedPct = realized / costBasis * 100
	}

	// A sell that empties the position deletes the row; zero-quantity
	// positions must not exist.
	var next *store.Position
	if remaining := pos.Quantity - quantity; remaining > 0 {
		next = &store.Position{Symbol: symbol, Quantity: remaining, AverageCost: pos.AverageCost}
	}

	now := time.Now().UTC()
	newBalance := acct.Balance + proceeds
	trade := store.Trade{
		TradeID:      id.New(),
		AccountID:    e.accountID,
		Symbol:       symbol,
		Action:       Sell,
		Quantity:     quantity,
		Price:        price,
		BalanceAfter: newBalance,
		PaperTrade:   true,
		Timestamp:    now,
	}

	if err := e.store.ApplyTrade(store.TradeApplication{
		Trade:      trade,
		NewBalance: newBalance,
		Position:   next,
	}); err != nil {
		return TradeResult{}, err
	}

	e.logger.Info("sell filled",
		"symbol", symbol,
		"quantity", quantity,
		"price", price,
		"proceeds", proceeds,
		"realized_pl", realized,
		"balance", newBalance,
	)

	return TradeResult{
		TradeID:       trade.TradeID,
		Action:        Sell,
		Symbol:        symbol,
		Quantity:      quantity,
		Price:         price,
		Proceeds:      proceeds,
		BalanceAfter:  newBalance,
		RealizedPL:    realized,
		RealizedPLPct: realizedPct,
		Timestamp:     now,
	}, nil
}

// Account returns the engine's paper account.
func (e *Engine) Account() (store.Account, error) {
	return e.store.Account(e.accountID)
}

// History returns up to limit committed paper trades, most recent first.
// A non-positive limit defaults to 50.
func (e *Engine) History(limit int) ([]store.Trade, error) {
	if limit <= 0 {
		limit = 50
	}
	return e.store.TradeHistory(e.accountID, limit)
}
