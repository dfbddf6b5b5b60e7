package dictionary

import (
	"encoding/json"
	"os"
	"strings"
)

const UnknownCompany = "Unknown"

// Dictionary maps ticker symbols to company display names. The backing
// file is a flat JSON object, e.g. {"AAPL": "Apple Inc.", "MSFT": "Microsoft"}.
type Dictionary struct {
	companies map[string]string // map[ticker]company name
}

func New(path string) (*Dictionary, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var companies map[string]string
	if err := json.Unmarshal(file, &companies); err != nil {
		return nil, err
	}

	normalized := make(map[string]string, len(companies))
	for ticker, name := range companies {
		normalized[strings.ToUpper(ticker)] = name
	}

	return &Dictionary{companies: normalized}, nil
}

// CompanyName returns the display name for ticker, or UnknownCompany
// when the ticker is not in the dictionary.
func (d *Dictionary) CompanyName(ticker string) string {
	name, ok := d.companies[strings.ToUpper(ticker)]
	if !ok {
		return UnknownCompany
	}

	return name
}

func (d *Dictionary) Tickers() []string {
	tickers := make([]string, 0, len(d.companies))

	for ticker := range d.companies {
		tickers = append(tickers, ticker)
	}

	return tickers
}
