package postgres

import (
	"time"

	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/shopspring/decimal"
)

type User struct {
	ID int64 `db:"id"`

	Name           string `db:"name"`
	HashedPassword string `db:"hashed_password"`

	CreatedAt time.Time `db:"created_at"`
}

func (u *User) CreateDomain() *domain.User {
	return &domain.User{
		ID:             u.ID,
		Name:           u.Name,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
	}
}

type Portfolio struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	TotalValue decimal.Decimal `db:"total_value"`
	TotalROI   decimal.Decimal `db:"total_roi"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *Portfolio) CreateDomain() *domain.Portfolio {
	return &domain.Portfolio{
		ID:         p.ID,
		UserID:     p.UserID,
		TotalValue: p.TotalValue,
		TotalROI:   p.TotalROI,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type Holding struct {
	ID          int64 `db:"id"`
	PortfolioID int64 `db:"portfolio_id"`

	Ticker     string          `db:"ticker"`
	Quantity   int64           `db:"quantity"`
	LastPrice  decimal.Decimal `db:"last_price"`
	TotalValue decimal.Decimal `db:"total_value"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (h *Holding) CreateDomain() *domain.Holding {
	return &domain.Holding{
		ID:          h.ID,
		PortfolioID: h.PortfolioID,
		Ticker:      h.Ticker,
		Quantity:    h.Quantity,
		LastPrice:   h.LastPrice,
		TotalValue:  h.TotalValue,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
