package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrs.ErrInvalidCredentials)
		return
	}

	token, err := s.authService.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully.",
		Token:   token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrs.ErrInvalidCredentials)
		return
	}

	token, userID, err := s.authService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{
		Token:  token,
		UserID: userID,
	})
}

// handleLogout acknowledges the logout. Tokens are stateless, so the
// client deletes its copy; nothing is invalidated server-side.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, messageResponse{
		Message: "Logout successful. Please delete the token client-side.",
	})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	summary, err := s.ledgerService.PortfolioSummary(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newPortfolioResponse(summary))
}

func (s *Server) handleAssetDetails(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.ledgerService.AssetDetails(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newAssetsResponse(report))
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	userID, req, err := tradeParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	message, err := s.ledgerService.Buy(r.Context(), userID, req.Symbol, req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	userID, req, err := tradeParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	message, err := s.ledgerService.Sell(r.Context(), userID, req.Symbol, req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (s *Server) handleHistoricalPrices(w http.ResponseWriter, r *http.Request) {
	points, err := s.ledgerService.HistoricalPrices(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, points)
}

func userIDParam(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		return 0, apperrs.ErrUserNotFound
	}

	return userID, nil
}

// tradeParams reads the user id from the path and the trade body. The
// body's symbol wins over the path symbol when both are present,
// matching the original API contract.
func tradeParams(r *http.Request) (int64, *tradeRequest, error) {
	userID, err := userIDParam(r)
	if err != nil {
		return 0, nil, err
	}

	req := &tradeRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return 0, nil, apperrs.ErrInvalidQuantity
	}

	if req.Symbol == "" {
		req.Symbol = chi.URLParam(r, "symbol")
	}

	return userID, req, nil
}
