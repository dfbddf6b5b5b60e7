package server

import (
	"github.com/CaboRojo/stockfolio/internal/ledger"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

type registerResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type stockDetail struct {
	Symbol           string          `json:"symbol"`
	Quantity         int64           `json:"quantity"`
	LastClosingPrice decimal.Decimal `json:"last_closing_price"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
}

type portfolioResponse struct {
	TotalPortfolioValue decimal.Decimal `json:"total_portfolio_value"`
	ROI                 decimal.Decimal `json:"roi"`
	StocksDetails       []stockDetail   `json:"stocks_details"`
}

func newPortfolioResponse(summary *ledger.PortfolioSummary) portfolioResponse {
	details := make([]stockDetail, 0, len(summary.Holdings))
	for _, holding := range summary.Holdings {
		details = append(details, stockDetail{
			Symbol:           holding.Ticker,
			Quantity:         holding.Quantity,
			LastClosingPrice: holding.LastPrice,
			TotalStockValue:  holding.TotalValue,
		})
	}

	return portfolioResponse{
		TotalPortfolioValue: summary.TotalValue,
		ROI:                 summary.ROI,
		StocksDetails:       details,
	}
}

type assetDetail struct {
	Symbol              string          `json:"symbol"`
	CompanyName         string          `json:"company_name"`
	Quantity            int64           `json:"quantity"`
	PortfolioPercentage decimal.Decimal `json:"portfolio_percentage"`
	LastClosingPrice    decimal.Decimal `json:"last_closing_price"`
}

type assetsResponse struct {
	TotalPortfolioValue decimal.Decimal `json:"total_portfolio_value"`
	StocksDetails       []assetDetail   `json:"stocks_details"`
}

func newAssetsResponse(report *ledger.AssetReport) assetsResponse {
	details := make([]assetDetail, 0, len(report.Assets))
	for _, asset := range report.Assets {
		details = append(details, assetDetail{
			Symbol:              asset.Symbol,
			CompanyName:         asset.CompanyName,
			Quantity:            asset.Quantity,
			PortfolioPercentage: asset.PortfolioPercentage,
			LastClosingPrice:    asset.LastClosingPrice,
		})
	}

	return assetsResponse{
		TotalPortfolioValue: report.TotalValue,
		StocksDetails:       details,
	}
}
