package ledger

import (
	"context"

	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// PortfolioSummary is the stored view of a portfolio: totals as last
// committed plus the current holdings.
type PortfolioSummary struct {
	TotalValue decimal.Decimal
	ROI        decimal.Decimal
	Holdings   []*domain.Holding
}

// AssetDetail is one live-enriched position of the assets view.
type AssetDetail struct {
	Symbol              string
	CompanyName         string
	Quantity            int64
	PortfolioPercentage decimal.Decimal
	LastClosingPrice    decimal.Decimal
}

type AssetReport struct {
	TotalValue decimal.Decimal
	Assets     []*AssetDetail
}

func (s *Service) PortfolioSummary(ctx context.Context, userID int64) (*PortfolioSummary, error) {
	portfolio, err := s.deps.Portfolios.GetPortfolioByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.deps.Portfolios.GetHoldings(ctx, portfolio.ID)
	if err != nil {
		return nil, err
	}

	return &PortfolioSummary{
		TotalValue: portfolio.TotalValue,
		ROI:        portfolio.TotalROI,
		Holdings:   holdings,
	}, nil
}

// AssetDetails re-prices every holding live and reports each position's
// share of the portfolio. A ticker whose price cannot be fetched is
// omitted from the list instead of failing the whole view.
func (s *Service) AssetDetails(ctx context.Context, userID int64) (*AssetReport, error) {
	portfolio, err := s.deps.Portfolios.GetPortfolioByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.deps.Portfolios.GetHoldings(ctx, portfolio.ID)
	if err != nil {
		return nil, err
	}

	assets := make([]*AssetDetail, 0, len(holdings))
	for _, holding := range holdings {
		price, err := s.deps.Prices.LatestClose(ctx, holding.Ticker)
		if err != nil {
			log.Warn("skipping unpriceable holding",
				zap.String("ticker", holding.Ticker),
				zap.Error(err),
			)
			continue
		}

		liveValue := price.Mul(decimal.NewFromInt(holding.Quantity))

		percentage := decimal.Zero
		if !portfolio.TotalValue.IsZero() {
			percentage = liveValue.Div(portfolio.TotalValue).Mul(oneHundred)
		}

		assets = append(assets, &AssetDetail{
			Symbol:              holding.Ticker,
			CompanyName:         s.deps.Companies.CompanyName(holding.Ticker),
			Quantity:            holding.Quantity,
			PortfolioPercentage: percentage,
			LastClosingPrice:    price,
		})
	}

	return &AssetReport{
		TotalValue: portfolio.TotalValue,
		Assets:     assets,
	}, nil
}

// HistoricalPrices returns the cached 12-month adjusted monthly closes
// for ticker.
func (s *Service) HistoricalPrices(ctx context.Context, ticker string) ([]*domain.PricePoint, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	cacheKey := "monthly:" + ticker
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]*domain.PricePoint), nil
	}

	points, err := s.deps.Prices.MonthlyAdjusted(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(cacheKey, points)

	return points, nil
}
