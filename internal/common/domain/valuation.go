package domain

import (
	"time"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/shopspring/decimal"
)

// TradePlan is the proposed state change produced by the valuation
// functions. It is pure data: the repository commits it atomically, the
// engine never touches storage.
type TradePlan struct {
	// Holding is the post-trade holding state. On a full sell it carries
	// the exhausted position (quantity 0) and RemoveHolding is set.
	Holding       *Holding
	RemoveHolding bool

	Transaction *Transaction

	// PortfolioDelta is added to the portfolio's total value.
	PortfolioDelta decimal.Decimal
}

// ApplyBuy computes the state change for buying quantity shares of
// ticker at price. The holding argument is the current persisted
// position, or nil when the portfolio holds none of the ticker yet.
func ApplyBuy(holding *Holding, portfolioID int64, ticker string, quantity int64, price decimal.Decimal, now time.Time) (*TradePlan, error) {
	if quantity <= 0 {
		return nil, apperrs.ErrInvalidQuantity
	}

	cost := price.Mul(decimal.NewFromInt(quantity))

	var updated *Holding
	if holding == nil {
		updated = &Holding{
			PortfolioID: portfolioID,
			Ticker:      ticker,
			Quantity:    quantity,
			LastPrice:   price,
			TotalValue:  cost,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	} else {
		updated = &Holding{
			ID:          holding.ID,
			PortfolioID: holding.PortfolioID,
			Ticker:      holding.Ticker,
			Quantity:    holding.Quantity + quantity,
			// The stored closing price is set on the first buy and kept
			// on repeat buys; only the position's value accumulates.
			LastPrice:  holding.LastPrice,
			TotalValue: holding.TotalValue.Add(cost),
			CreatedAt:  holding.CreatedAt,
			UpdatedAt:  now,
		}
	}

	return &TradePlan{
		Holding: updated,
		Transaction: &Transaction{
			PortfolioID: portfolioID,
			Ticker:      ticker,
			Quantity:    quantity,
			Price:       price,
			TotalValue:  updated.TotalValue,
			Kind:        TransactionKindBuy,
			ExecutedAt:  now,
		},
		PortfolioDelta: cost,
	}, nil
}

// ApplySell computes the state change for selling quantity shares of
// the holding. The sale is valued at the holding's stored last closing
// price, and the position's value shrinks proportionally, so the
// recorded per-unit valuation is preserved.
func ApplySell(holding *Holding, quantity int64, now time.Time) (*TradePlan, error) {
	if holding == nil {
		return nil, apperrs.ErrHoldingNotFound
	}

	if quantity <= 0 || quantity > holding.Quantity {
		return nil, apperrs.ErrInvalidQuantity
	}

	remaining := holding.Quantity - quantity

	newValue := holding.TotalValue.
		Mul(decimal.NewFromInt(remaining)).
		Div(decimal.NewFromInt(holding.Quantity))

	proceeds := holding.LastPrice.Mul(decimal.NewFromInt(quantity))

	updated := &Holding{
		ID:          holding.ID,
		PortfolioID: holding.PortfolioID,
		Ticker:      holding.Ticker,
		Quantity:    remaining,
		LastPrice:   holding.LastPrice,
		TotalValue:  newValue,
		CreatedAt:   holding.CreatedAt,
		UpdatedAt:   now,
	}

	return &TradePlan{
		Holding:       updated,
		RemoveHolding: remaining == 0,
		Transaction: &Transaction{
			PortfolioID: holding.PortfolioID,
			Ticker:      holding.Ticker,
			Quantity:    -quantity,
			Price:       holding.LastPrice,
			TotalValue:  newValue,
			Kind:        TransactionKindSell,
			ExecutedAt:  now,
		},
		PortfolioDelta: proceeds.Neg(),
	}, nil
}
