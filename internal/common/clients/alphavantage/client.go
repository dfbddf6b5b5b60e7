package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/internal/common/config"
	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	functionDaily           = "TIME_SERIES_DAILY"
	functionMonthlyAdjusted = "TIME_SERIES_MONTHLY_ADJUSTED"

	maxRetries  = 2
	backoffBase = 250 * time.Millisecond

	// monthlyLookback caps the historical series at the last 12 months.
	monthlyLookback = 12
)

// Client talks to the Alpha Vantage HTTP API. It is stateless and safe
// for concurrent use; every failure mode surfaces as
// apperrs.ErrPriceUnavailable rather than a fault.
type Client struct {
	httpClient *http.Client

	baseURL string
	apiKey  string
}

func NewClient(cfg *config.AlphaVantage) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// LatestClose returns the most recent daily closing price for ticker.
func (c *Client) LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("function", functionDaily)
	params.Set("symbol", ticker)
	params.Set("outputsize", "compact")

	res := &dailySeriesResponse{}
	if err := c.request(ctx, ticker, params, res); err != nil {
		return decimal.Zero, err
	}

	price, ok := res.LatestClose()
	if !ok {
		log.Warn("alphavantage: no daily close in response", zap.String("ticker", ticker))
		return decimal.Zero, apperrs.ErrPriceUnavailable
	}

	return price, nil
}

// MonthlyAdjusted returns the last 12 months of adjusted closing
// prices for ticker, newest first.
func (c *Client) MonthlyAdjusted(ctx context.Context, ticker string) ([]*domain.PricePoint, error) {
	params := url.Values{}
	params.Set("function", functionMonthlyAdjusted)
	params.Set("symbol", ticker)

	res := &monthlyAdjustedResponse{}
	if err := c.request(ctx, ticker, params, res); err != nil {
		return nil, err
	}

	points := res.CreateDomain(monthlyLookback)
	if len(points) == 0 {
		log.Warn("alphavantage: no monthly series in response", zap.String("ticker", ticker))
		return nil, apperrs.ErrPriceUnavailable
	}

	return points, nil
}

func (c *Client) request(ctx context.Context, ticker string, params url.Values, out any) error {
	if ticker == "" {
		return apperrs.ErrPriceUnavailable
	}

	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	backoff := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(backoffBase))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		log.Warn("alphavantage: request failed",
			zap.String("ticker", ticker),
			zap.Error(err),
		)

		return apperrs.ErrPriceUnavailable
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Warn("alphavantage: malformed response",
			zap.String("ticker", ticker),
			zap.Error(err),
		)

		return apperrs.ErrPriceUnavailable
	}

	return nil
}
