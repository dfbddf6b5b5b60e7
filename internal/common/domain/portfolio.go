package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioRepository interface {
	GetPortfolioByUserID(ctx context.Context, userID int64) (*Portfolio, error)
	GetHoldings(ctx context.Context, portfolioID int64) ([]*Holding, error)

	// ExecuteBuy and ExecuteSell run the read-lock-compute-write cycle of
	// a trade inside one storage transaction. The portfolio row is locked
	// for the duration, so concurrent trades against the same portfolio
	// serialize and lost updates cannot occur. For a buy the caller
	// supplies the freshly fetched market price; a sell reuses the
	// holding's stored last closing price.
	ExecuteBuy(ctx context.Context, portfolioID int64, ticker string, quantity int64, price decimal.Decimal) (*TradeResult, error)
	ExecuteSell(ctx context.Context, portfolioID int64, ticker string, quantity int64) (*TradeResult, error)
}

type Portfolio struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	TotalValue decimal.Decimal `json:"total_value"`
	TotalROI   decimal.Decimal `json:"total_roi"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holding is a portfolio's current position in one ticker. A holding
// exists only while quantity > 0; selling the full position deletes it.
type Holding struct {
	ID          int64 `json:"id"`
	PortfolioID int64 `json:"portfolio_id"`

	Ticker     string          `json:"ticker"`
	Quantity   int64           `json:"quantity"`
	LastPrice  decimal.Decimal `json:"last_price"`
	TotalValue decimal.Decimal `json:"total_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TradeResult reports the committed outcome of a buy or sell.
type TradeResult struct {
	Ticker   string          `json:"ticker"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	SoldAll  bool            `json:"sold_all"`

	PortfolioTotal decimal.Decimal `json:"portfolio_total"`
}
