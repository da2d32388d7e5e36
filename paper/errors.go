package paper

import "errors"

// Order failures are sentinel values so callers can branch with errors.Is;
// the wrapped message carries the symbol and amounts for the audit trail.
var (
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrNoPriceData        = errors.New("no price data")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoPosition         = errors.New("no position")
	ErrInsufficientShares = errors.New("insufficient shares")
)
