package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/dictionary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeUsersRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUsersRepo) CreateUserWithPortfolio(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (f *fakeUsersRepo) GetUserByName(_ context.Context, name string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Name == name {
			return user, nil
		}
	}
	return nil, apperrs.ErrUserNotFound
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrs.ErrUserNotFound
	}
	return user, nil
}

type fakePortfolioRepo struct {
	portfolio *domain.Portfolio
	holdings  []*domain.Holding

	buyCalls  int
	sellCalls int

	result   *domain.TradeResult
	tradeErr error
}

func (f *fakePortfolioRepo) GetPortfolioByUserID(_ context.Context, userID int64) (*domain.Portfolio, error) {
	if f.portfolio == nil || f.portfolio.UserID != userID {
		return nil, apperrs.ErrPortfolioNotFound
	}
	return f.portfolio, nil
}

func (f *fakePortfolioRepo) GetHoldings(_ context.Context, _ int64) ([]*domain.Holding, error) {
	return f.holdings, nil
}

func (f *fakePortfolioRepo) ExecuteBuy(_ context.Context, _ int64, _ string, _ int64, _ decimal.Decimal) (*domain.TradeResult, error) {
	f.buyCalls++
	return f.result, f.tradeErr
}

func (f *fakePortfolioRepo) ExecuteSell(_ context.Context, _ int64, _ string, _ int64) (*domain.TradeResult, error) {
	f.sellCalls++
	return f.result, f.tradeErr
}

type fakePriceProvider struct {
	prices map[string]decimal.Decimal
	series []*domain.PricePoint

	latestCalls  int
	monthlyCalls int
}

func (f *fakePriceProvider) LatestClose(_ context.Context, ticker string) (decimal.Decimal, error) {
	f.latestCalls++
	price, ok := f.prices[ticker]
	if !ok {
		return decimal.Zero, apperrs.ErrPriceUnavailable
	}
	return price, nil
}

func (f *fakePriceProvider) MonthlyAdjusted(_ context.Context, _ string) ([]*domain.PricePoint, error) {
	f.monthlyCalls++
	if f.series == nil {
		return nil, apperrs.ErrPriceUnavailable
	}
	return f.series, nil
}

func testDictionary(t *testing.T) *dictionary.Dictionary {
	t.Helper()

	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"AAPL": "Apple Inc."}`), 0o644))

	companies, err := dictionary.New(path)
	require.NoError(t, err)

	return companies
}

func newTestService(t *testing.T, portfolios *fakePortfolioRepo, prices *fakePriceProvider) *Service {
	t.Helper()

	return NewService(&Dependencies{
		Users: &fakeUsersRepo{users: map[int64]*domain.User{
			1: {ID: 1, Name: "alice"},
		}},
		Portfolios: portfolios,
		Prices:     prices,
		Companies:  testDictionary(t),
	})
}

func TestBuy_InvalidQuantityShortCircuits(t *testing.T) {
	portfolios := &fakePortfolioRepo{}
	prices := &fakePriceProvider{}
	svc := newTestService(t, portfolios, prices)

	_, err := svc.Buy(context.Background(), 1, "AAPL", 0)
	assert.ErrorIs(t, err, apperrs.ErrInvalidQuantity)

	// Rejected before any network or storage call.
	assert.Zero(t, prices.latestCalls)
	assert.Zero(t, portfolios.buyCalls)
}

func TestBuy_EmptyTicker(t *testing.T) {
	svc := newTestService(t, &fakePortfolioRepo{}, &fakePriceProvider{})

	_, err := svc.Buy(context.Background(), 1, "  ", 5)
	assert.ErrorIs(t, err, apperrs.ErrInvalidTicker)
}

func TestBuy_UnknownUser(t *testing.T) {
	prices := &fakePriceProvider{}
	svc := newTestService(t, &fakePortfolioRepo{}, prices)

	_, err := svc.Buy(context.Background(), 99, "AAPL", 5)
	assert.ErrorIs(t, err, apperrs.ErrUserNotFound)
	assert.Zero(t, prices.latestCalls)
}

func TestBuy_PriceUnavailableAbortsBeforeCommit(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1},
	}
	prices := &fakePriceProvider{prices: map[string]decimal.Decimal{}}
	svc := newTestService(t, portfolios, prices)

	_, err := svc.Buy(context.Background(), 1, "AAPL", 5)
	assert.ErrorIs(t, err, apperrs.ErrPriceUnavailable)
	assert.Zero(t, portfolios.buyCalls)
}

func TestBuy_Success(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1},
		result: &domain.TradeResult{
			Ticker:         "AAPL",
			Quantity:       10,
			Price:          dec("150.00"),
			Total:          dec("1500.00"),
			PortfolioTotal: dec("1500.00"),
		},
	}
	prices := &fakePriceProvider{prices: map[string]decimal.Decimal{
		"AAPL": dec("150.00"),
	}}
	svc := newTestService(t, portfolios, prices)

	message, err := svc.Buy(context.Background(), 1, "aapl", 10)
	require.NoError(t, err)

	assert.Equal(t, "Successfully bought 10 shares of AAPL for $1,500.00.", message)
	assert.Equal(t, 1, portfolios.buyCalls)
}

func TestSell_DoesNotFetchPrice(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1},
		result: &domain.TradeResult{
			Ticker:   "AAPL",
			Quantity: 4,
			Price:    dec("150.00"),
			Total:    dec("600.00"),
		},
	}
	prices := &fakePriceProvider{}
	svc := newTestService(t, portfolios, prices)

	message, err := svc.Sell(context.Background(), 1, "AAPL", 4)
	require.NoError(t, err)

	assert.Equal(t, "Successfully sold 4 shares of AAPL.", message)
	assert.Zero(t, prices.latestCalls)
	assert.Equal(t, 1, portfolios.sellCalls)
}

func TestSell_AllSharesMessage(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1},
		result: &domain.TradeResult{
			Ticker:   "AAPL",
			Quantity: 6,
			SoldAll:  true,
		},
	}
	svc := newTestService(t, portfolios, &fakePriceProvider{})

	message, err := svc.Sell(context.Background(), 1, "AAPL", 6)
	require.NoError(t, err)

	assert.Equal(t, "Successfully sold all shares of AAPL.", message)
}

func TestSell_HoldingNotFound(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1},
		tradeErr:  apperrs.ErrHoldingNotFound,
	}
	svc := newTestService(t, portfolios, &fakePriceProvider{})

	_, err := svc.Sell(context.Background(), 1, "MSFT", 1)
	assert.ErrorIs(t, err, apperrs.ErrHoldingNotFound)
}

func TestAssetDetails_SkipsUnpriceableTickers(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1, TotalValue: dec("2000.00")},
		holdings: []*domain.Holding{
			{Ticker: "AAPL", Quantity: 10, LastPrice: dec("150.00"), TotalValue: dec("1500.00")},
			{Ticker: "MSFT", Quantity: 2, LastPrice: dec("250.00"), TotalValue: dec("500.00")},
		},
	}
	prices := &fakePriceProvider{prices: map[string]decimal.Decimal{
		"AAPL": dec("160.00"),
		// MSFT deliberately missing.
	}}
	svc := newTestService(t, portfolios, prices)

	report, err := svc.AssetDetails(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, report.Assets, 1)
	asset := report.Assets[0]
	assert.Equal(t, "AAPL", asset.Symbol)
	assert.Equal(t, "Apple Inc.", asset.CompanyName)
	assert.True(t, asset.LastClosingPrice.Equal(dec("160.00")))
	// 10 * 160 = 1600 of a 2000 portfolio.
	assert.True(t, asset.PortfolioPercentage.Equal(dec("80")))
}

func TestAssetDetails_UnknownCompanyName(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1, TotalValue: dec("500.00")},
		holdings: []*domain.Holding{
			{Ticker: "MSFT", Quantity: 2, LastPrice: dec("250.00"), TotalValue: dec("500.00")},
		},
	}
	prices := &fakePriceProvider{prices: map[string]decimal.Decimal{
		"MSFT": dec("250.00"),
	}}
	svc := newTestService(t, portfolios, prices)

	report, err := svc.AssetDetails(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, report.Assets, 1)
	assert.Equal(t, dictionary.UnknownCompany, report.Assets[0].CompanyName)
}

func TestPortfolioSummary(t *testing.T) {
	portfolios := &fakePortfolioRepo{
		portfolio: &domain.Portfolio{ID: 10, UserID: 1, TotalValue: dec("1500.00"), TotalROI: dec("0")},
		holdings: []*domain.Holding{
			{Ticker: "AAPL", Quantity: 10, LastPrice: dec("150.00"), TotalValue: dec("1500.00")},
		},
	}
	svc := newTestService(t, portfolios, &fakePriceProvider{})

	summary, err := svc.PortfolioSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, summary.TotalValue.Equal(dec("1500.00")))
	require.Len(t, summary.Holdings, 1)
	assert.Equal(t, "AAPL", summary.Holdings[0].Ticker)
}

func TestHistoricalPrices_Cached(t *testing.T) {
	prices := &fakePriceProvider{series: []*domain.PricePoint{
		{Date: "Feb 29, 2024", AdjustedClose: dec("150.00")},
	}}
	svc := newTestService(t, &fakePortfolioRepo{}, prices)

	first, err := svc.HistoricalPrices(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := svc.HistoricalPrices(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, prices.monthlyCalls)
}
