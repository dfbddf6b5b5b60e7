package alphavantage

import (
	"sort"
	"time"

	"github.com/CaboRojo/stockfolio/internal/common/domain"
	"github.com/shopspring/decimal"
)

const (
	seriesDateLayout = "2006-01-02"
	displayLayout    = "Jan 02, 2006"
)

type dailyEntry struct {
	Close string `json:"4. close"`
}

type dailySeriesResponse struct {
	Series map[string]dailyEntry `json:"Time Series (Daily)"`
}

// LatestClose picks the newest date in the series and parses its close.
func (res *dailySeriesResponse) LatestClose() (decimal.Decimal, bool) {
	var latest string
	for date := range res.Series {
		if date > latest {
			latest = date
		}
	}

	if latest == "" {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(res.Series[latest].Close)
	if err != nil {
		return decimal.Zero, false
	}

	return price, true
}

type monthlyEntry struct {
	AdjustedClose string `json:"5. adjusted close"`
}

type monthlyAdjustedResponse struct {
	Series map[string]monthlyEntry `json:"Monthly Adjusted Time Series"`
}

// CreateDomain converts the series into price points, newest first,
// capped at limit entries. Entries with unparsable dates or prices are
// skipped.
func (res *monthlyAdjustedResponse) CreateDomain(limit int) []*domain.PricePoint {
	dates := make([]string, 0, len(res.Series))
	for date := range res.Series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	points := make([]*domain.PricePoint, 0, limit)
	for _, date := range dates {
		if len(points) == limit {
			break
		}

		parsed, err := time.Parse(seriesDateLayout, date)
		if err != nil {
			continue
		}

		price, err := decimal.NewFromString(res.Series[date].AdjustedClose)
		if err != nil {
			continue
		}

		points = append(points, &domain.PricePoint{
			Date:          parsed.Format(displayLayout),
			AdjustedClose: price,
		})
	}

	return points
}
