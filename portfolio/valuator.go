// Package portfolio values the open position ledger against the latest
// stored prices, and manages direct ledger adjustments and the watchlist.
package portfolio

import (
	"errors"
	"log/slog"

	"github.com/rustyeddy/paperdesk/store"
)

// PositionValue is one position marked to the latest close.
type PositionValue struct {
	Symbol          string  `json:"symbol"`
	Quantity        float64 `json:"quantity"`
	AverageCost     float64 `json:"average_cost"`
	CurrentPrice    float64 `json:"current_price"`
	CostBasis       float64 `json:"cost_basis"`
	MarketValue     float64 `json:"market_value"`
	UnrealizedPL    float64 `json:"unrealized_pl"`
	UnrealizedPLPct float64 `json:"unrealized_pl_pct"`
}

// Valuation aggregates every open position.
type Valuation struct {
	TotalMarketValue float64         `json:"total_market_value"`
	TotalCostBasis   float64         `json:"total_cost_basis"`
	TotalPL          float64         `json:"total_pl"`
	TotalPLPct       float64         `json:"total_pl_pct"`
	NumPositions     int             `json:"num_positions"`
	Positions        []PositionValue `json:"positions"`
}

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Position returns the raw ledger row for symbol (store.ErrNotFound when
// there is no open position).
func (s *Service) Position(symbol string) (store.Position, error) {
	return s.store.Position(symbol)
}

// Positions returns every raw ledger row ordered by symbol.
func (s *Service) Positions() ([]store.Position, error) {
	return s.store.Positions()
}

// ValuePosition marks one position at the latest close. When no price is
// stored the position is valued at its average cost, which reads as zero
// unrealized P&L rather than an error; the degraded mode is logged.
func (s *Service) ValuePosition(symbol string) (PositionValue, error) {
	pos, err := s.store.Position(symbol)
	if err != nil {
		return PositionValue{}, err
	}

	price, err := s.store.LatestClose(symbol)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("no current price, falling back to average cost", "symbol", symbol)
		price = pos.AverageCost
	} else if err != nil {
		return PositionValue{}, err
	}

	costBasis := pos.Quantity * pos.AverageCost
	marketValue := pos.Quantity * price
	pl := marketValue - costBasis
	plPct := 0.0
	if costBasis > 0 {
		plPct = pl / costBasis * 100
	}

	return PositionValue{
		Symbol:          symbol,
		Quantity:        pos.Quantity,
		AverageCost:     pos.AverageCost,
		CurrentPrice:    price,
		CostBasis:       costBasis,
		MarketValue:     marketValue,
		UnrealizedPL:    pl,
		UnrealizedPLPct: plPct,
	}, nil
}

// ValuePortfolio aggregates ValuePosition over every open position. An
// empty ledger is a valid portfolio with zero totals, not an error.
func (s *Service) ValuePortfolio() (Valuation, error) {
	positions, err := s.store.Positions()
	if err != nil {
		return Valuation{}, err
	}

	v := Valuation{
		NumPositions: len(positions),
		Positions:    make([]PositionValue, 0, len(positions)),
	}
	for _, p := range positions {
		pv, err := s.ValuePosition(p.Symbol)
		if err != nil {
			return Valuation{}, err
		}
		v.TotalMarketValue += pv.MarketValue
		v.TotalCostBasis += pv.CostBasis
		v.Positions = append(v.Positions, pv)
	}

	v.TotalPL = v.TotalMarketValue - v.TotalCostBasis
	if v.TotalCostBasis > 0 {
		v.TotalPLPct = v.TotalPL / v.TotalCostBasis * 100
	}
	return v, nil
}
