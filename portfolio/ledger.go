package portfolio

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/paperdesk/store"
)

// AddShares records shares acquired outside the paper engine, for example
// an imported holding. Fractional quantities are allowed here; the engine
// itself only fills whole-share orders. Average cost re-weights exactly as
// a BUY fill would.
func (s *Service) AddShares(symbol string, quantity, price float64) (store.Position, error) {
	if quantity <= 0 {
		return store.Position{}, fmt.Errorf("quantity must be positive, got %v", quantity)
	}
	if price <= 0 {
		return store.Position{}, fmt.Errorf("price must be positive, got %v", price)
	}

	pos, err := s.store.Position(symbol)
	switch {
	case errors.Is(err, store.ErrNotFound):
		pos = store.Position{Symbol: symbol, Quantity: quantity, AverageCost: price}
	case err != nil:
		return store.Position{}, err
	default:
		newQty := pos.Quantity + quantity
		pos.AverageCost = (pos.Quantity*pos.AverageCost + quantity*price) / newQty
		pos.Quantity = newQty
	}

	if err := s.store.UpsertPosition(pos.Symbol, pos.Quantity, pos.AverageCost); err != nil {
		return store.Position{}, err
	}

	s.logger.Info("position updated",
		"symbol", symbol,
		"quantity", pos.Quantity,
		"average_cost", pos.AverageCost,
	)
	return s.store.Position(symbol)
}

// RemoveShares reduces a position without touching the cash account. The
// returned closed flag reports that the removal emptied the position and
// its row was deleted.
func (s *Service) RemoveShares(symbol string, quantity float64) (store.Position, bool, error) {
	pos, err := s.store.Position(symbol)
	if err != nil {
		return store.Position{}, false, err
	}
	if quantity <= 0 {
		return store.Position{}, false, fmt.Errorf("quantity must be positive, got %v", quantity)
	}
	if quantity > pos.Quantity {
		return store.Position{}, false, fmt.Errorf("insufficient shares: have %v, removing %v", pos.Quantity, quantity)
	}

	remaining := pos.Quantity - quantity
	if remaining == 0 {
		if err := s.store.DeletePosition(symbol); err != nil {
			return store.Position{}, false, err
		}
		s.logger.Info("position closed", "symbol", symbol)
		return store.Position{}, true, nil
	}

	if err := s.store.UpsertPosition(symbol, remaining, pos.AverageCost); err != nil {
		return store.Position{}, false, err
	}
	s.logger.Info("position reduced", "symbol", symbol, "quantity", remaining)

	p, err := s.store.Position(symbol)
	return p, false, err
}

// Watchlist passthroughs.

func (s *Service) Watchlist() ([]store.WatchlistEntry, error) {
	return s.store.Watchlist()
}

func (s *Service) Watch(symbol, notes string) error {
	if err := s.store.AddToWatchlist(symbol, notes); err != nil {
		return err
	}
	s.logger.Info("added to watchlist", "symbol", symbol)
	return nil
}

func (s *Service) Unwatch(symbol string) error {
	if err := s.store.RemoveFromWatchlist(symbol); err != nil {
		return err
	}
	s.logger.Info("removed from watchlist", "symbol", symbol)
	return nil
}
