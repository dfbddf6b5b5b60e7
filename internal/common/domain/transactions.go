package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable audit record of a single buy or sell
// event. Quantity is signed: positive for a buy, negative for a sell.
// TotalValue is the holding's value after the event was applied.
type Transaction struct {
	ID          int64 `json:"id"`
	PortfolioID int64 `json:"portfolio_id"`

	Ticker     string          `json:"ticker"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Kind       string          `json:"kind"`

	ExecutedAt time.Time `json:"executed_at"`
}
