package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/cache"
	"github.com/CaboRojo/stockfolio/pkg/dictionary"
	"github.com/CaboRojo/stockfolio/pkg/format"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"go.uber.org/zap"
)

// Monthly series are append-only once a month closes, so a generous
// cache TTL is safe. Live prices used by the buy path are never cached.
const (
	seriesCacheTTL     = 6 * time.Hour
	seriesCacheCleanup = time.Hour
)

// Service sequences portfolio mutations and serves the read views.
type Service struct {
	cache *cache.Cache

	deps *Dependencies
}

type Dependencies struct {
	Users      domain.UsersRepository
	Portfolios domain.PortfolioRepository
	Prices     domain.PriceProvider
	Companies  *dictionary.Dictionary
}

func NewService(deps *Dependencies) *Service {
	return &Service{
		cache: cache.New(seriesCacheTTL, seriesCacheCleanup),
		deps:  deps,
	}
}

// Buy purchases quantity shares of ticker at the current market price:
// validate, fetch price, then commit holding + transaction + portfolio
// total atomically. A price failure aborts before any write.
func (s *Service) Buy(ctx context.Context, userID int64, ticker string, quantity int64) (string, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return "", err
	}
	if quantity <= 0 {
		return "", apperrs.ErrInvalidQuantity
	}

	portfolio, err := s.portfolioForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	price, err := s.deps.Prices.LatestClose(ctx, ticker)
	if err != nil {
		return "", err
	}

	result, err := s.deps.Portfolios.ExecuteBuy(ctx, portfolio.ID, ticker, quantity, price)
	if err != nil {
		return "", err
	}

	log.Info("buy executed",
		zap.Int64("userID", userID),
		zap.String("ticker", ticker),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.String("portfolioTotal", result.PortfolioTotal.String()),
	)

	return fmt.Sprintf("Successfully bought %d shares of %s for $%s.",
		quantity, ticker, format.Money(result.Total, ",", ".")), nil
}

// Sell disposes quantity shares of ticker, valued at the holding's
// stored last closing price.
func (s *Service) Sell(ctx context.Context, userID int64, ticker string, quantity int64) (string, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return "", err
	}
	if quantity <= 0 {
		return "", apperrs.ErrInvalidQuantity
	}

	portfolio, err := s.portfolioForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	result, err := s.deps.Portfolios.ExecuteSell(ctx, portfolio.ID, ticker, quantity)
	if err != nil {
		return "", err
	}

	log.Info("sell executed",
		zap.Int64("userID", userID),
		zap.String("ticker", ticker),
		zap.Int64("quantity", quantity),
		zap.Bool("soldAll", result.SoldAll),
		zap.String("portfolioTotal", result.PortfolioTotal.String()),
	)

	if result.SoldAll {
		return fmt.Sprintf("Successfully sold all shares of %s.", ticker), nil
	}

	return fmt.Sprintf("Successfully sold %d shares of %s.", quantity, ticker), nil
}

func (s *Service) portfolioForUser(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	if _, err := s.deps.Users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.deps.Portfolios.GetPortfolioByUserID(ctx, userID)
}

func normalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", apperrs.ErrInvalidTicker
	}

	return ticker, nil
}
