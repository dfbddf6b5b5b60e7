package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/errs"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type portfolioRepository struct {
	psql *pgxpool.Pool
}

func NewPortfolioRepository(pool *pgxpool.Pool) domain.PortfolioRepository {
	return &portfolioRepository{
		psql: pool,
	}
}

func (pr *portfolioRepository) GetPortfolioByUserID(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	query := `SELECT
			id,
			user_id,
			total_value,
			total_roi,
			created_at,
			updated_at
		FROM stockfolio.portfolios WHERE user_id = $1`
	portfolio := &Portfolio{}
	if err := pr.psql.QueryRow(ctx, query, userID).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.TotalValue,
		&portfolio.TotalROI,
		&portfolio.CreatedAt,
		&portfolio.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrs.ErrPortfolioNotFound
		}

		return nil, errs.NewStack(err)
	}

	return portfolio.CreateDomain(), nil
}

func (pr *portfolioRepository) GetHoldings(ctx context.Context, portfolioID int64) ([]*domain.Holding, error) {
	query := `SELECT
			id,
			portfolio_id,
			ticker,
			quantity,
			last_price,
			total_value,
			created_at,
			updated_at
		FROM stockfolio.holdings
		WHERE portfolio_id = $1
		ORDER BY ticker ASC`
	rows, err := pr.psql.Query(ctx, query, portfolioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*domain.Holding{}, nil
		}

		return nil, errs.NewStack(err)
	}
	defer rows.Close()

	holdings := []*domain.Holding{}
	for rows.Next() {
		holding := &Holding{}
		if err := rows.Scan(
			&holding.ID,
			&holding.PortfolioID,
			&holding.Ticker,
			&holding.Quantity,
			&holding.LastPrice,
			&holding.TotalValue,
			&holding.CreatedAt,
			&holding.UpdatedAt,
		); err != nil {
			return nil, errs.NewStack(err)
		}

		holdings = append(holdings, holding.CreateDomain())
	}

	return holdings, nil
}

// ExecuteBuy commits a buy as one transaction: the portfolio row is
// locked FOR UPDATE first, which serializes every trade against the
// same portfolio (including first buys of a ticker, where no holding
// row exists to lock yet), then the holding snapshot is read under the
// same lock, the valuation is applied, and all three writes land
// together or not at all.
func (pr *portfolioRepository) ExecuteBuy(ctx context.Context, portfolioID int64, ticker string, quantity int64, price decimal.Decimal) (*domain.TradeResult, error) {
	tx, err := pr.psql.Begin(ctx)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("failed to rollback transaction", zap.Error(err))
		}
	}()

	if err := lockPortfolio(ctx, tx, portfolioID); err != nil {
		return nil, err
	}

	holding, err := lockHolding(ctx, tx, portfolioID, ticker)
	if err != nil {
		return nil, err
	}

	plan, err := domain.ApplyBuy(holding, portfolioID, ticker, quantity, price, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	newTotal, err := commitPlan(ctx, tx, portfolioID, plan)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewStack(err)
	}

	return &domain.TradeResult{
		Ticker:         ticker,
		Quantity:       quantity,
		Price:          price,
		Total:          plan.PortfolioDelta,
		PortfolioTotal: newTotal,
	}, nil
}

// ExecuteSell mirrors ExecuteBuy with the sell valuation. The sale is
// priced at the holding's stored last closing price, so no market quote
// is needed here.
func (pr *portfolioRepository) ExecuteSell(ctx context.Context, portfolioID int64, ticker string, quantity int64) (*domain.TradeResult, error) {
	tx, err := pr.psql.Begin(ctx)
	if err != nil {
		return nil, errs.NewStack(err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("failed to rollback transaction", zap.Error(err))
		}
	}()

	if err := lockPortfolio(ctx, tx, portfolioID); err != nil {
		return nil, err
	}

	holding, err := lockHolding(ctx, tx, portfolioID, ticker)
	if err != nil {
		return nil, err
	}
	if holding == nil {
		return nil, apperrs.ErrHoldingNotFound
	}

	plan, err := domain.ApplySell(holding, quantity, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	newTotal, err := commitPlan(ctx, tx, portfolioID, plan)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewStack(err)
	}

	return &domain.TradeResult{
		Ticker:         ticker,
		Quantity:       quantity,
		Price:          plan.Transaction.Price,
		Total:          plan.PortfolioDelta.Neg(),
		SoldAll:        plan.RemoveHolding,
		PortfolioTotal: newTotal,
	}, nil
}

func lockPortfolio(ctx context.Context, tx pgx.Tx, portfolioID int64) error {
	query := `SELECT id FROM stockfolio.portfolios WHERE id = $1 FOR UPDATE`
	var id int64
	if err := tx.QueryRow(ctx, query, portfolioID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrs.ErrPortfolioNotFound
		}

		return errs.NewStack(err)
	}

	return nil
}

// lockHolding reads the current holding snapshot under a row lock.
// A nil holding with a nil error means the portfolio holds none of the
// ticker yet.
func lockHolding(ctx context.Context, tx pgx.Tx, portfolioID int64, ticker string) (*domain.Holding, error) {
	query := `SELECT
			id,
			portfolio_id,
			ticker,
			quantity,
			last_price,
			total_value,
			created_at,
			updated_at
		FROM stockfolio.holdings
		WHERE portfolio_id = $1 AND ticker = $2
		FOR UPDATE`
	holding := &Holding{}
	if err := tx.QueryRow(ctx, query, portfolioID, ticker).Scan(
		&holding.ID,
		&holding.PortfolioID,
		&holding.Ticker,
		&holding.Quantity,
		&holding.LastPrice,
		&holding.TotalValue,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, errs.NewStack(err)
	}

	return holding.CreateDomain(), nil
}

// commitPlan applies a TradePlan's writes inside tx: holding
// upsert/delete, transaction append, portfolio total update. Returns
// the portfolio's new total value.
func commitPlan(ctx context.Context, tx pgx.Tx, portfolioID int64, plan *domain.TradePlan) (decimal.Decimal, error) {
	h := plan.Holding

	switch {
	case plan.RemoveHolding:
		query := `DELETE FROM stockfolio.holdings WHERE id = $1`
		if _, err := tx.Exec(ctx, query, h.ID); err != nil {
			return decimal.Zero, errs.NewStack(err)
		}
	case h.ID == 0:
		query := `INSERT INTO stockfolio.holdings(portfolio_id, ticker, quantity, last_price, total_value)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, query, h.PortfolioID, h.Ticker, h.Quantity, h.LastPrice, h.TotalValue); err != nil {
			return decimal.Zero, errs.NewStack(err)
		}
	default:
		query := `UPDATE stockfolio.holdings
			SET quantity = $1,
				last_price = $2,
				total_value = $3,
				updated_at = NOW()
			WHERE id = $4`
		if _, err := tx.Exec(ctx, query, h.Quantity, h.LastPrice, h.TotalValue, h.ID); err != nil {
			return decimal.Zero, errs.NewStack(err)
		}
	}

	t := plan.Transaction
	query := `INSERT INTO stockfolio.transactions(portfolio_id, ticker, quantity, price, total_value, kind, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(ctx, query, t.PortfolioID, t.Ticker, t.Quantity, t.Price, t.TotalValue, t.Kind, t.ExecutedAt); err != nil {
		return decimal.Zero, errs.NewStack(err)
	}

	query = `UPDATE stockfolio.portfolios
		SET total_value = total_value + $1,
			updated_at = NOW()
		WHERE id = $2
		RETURNING total_value`
	var newTotal decimal.Decimal
	if err := tx.QueryRow(ctx, query, plan.PortfolioDelta, portfolioID).Scan(&newTotal); err != nil {
		return decimal.Zero, errs.NewStack(err)
	}

	return newTotal, nil
}
