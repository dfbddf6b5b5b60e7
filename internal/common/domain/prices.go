package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceProvider is the market-data boundary. Implementations report any
// failure to produce a price (transport error, unknown ticker, malformed
// upstream payload) as apperrs.ErrPriceUnavailable so callers can decide
// whether the enclosing operation aborts.
type PriceProvider interface {
	LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error)
	MonthlyAdjusted(ctx context.Context, ticker string) ([]*PricePoint, error)
}

// PricePoint is one entry of a historical price series.
type PricePoint struct {
	Date          string          `json:"date"`
	AdjustedClose decimal.Decimal `json:"adjustedClosingPrice"`
}
