package apperrs

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrHoldingNotFound    = errors.New("stock not found in portfolio")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidTicker      = errors.New("invalid ticker symbol")
	ErrPriceUnavailable   = errors.New("failed to retrieve stock price")
	ErrNameTaken          = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password does not meet complexity requirements")
	ErrMissingToken       = errors.New("token is missing")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpiredToken       = errors.New("token has expired")
)
