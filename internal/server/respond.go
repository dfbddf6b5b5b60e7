package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"go.uber.org/zap"
)

const internalErrorMessage = "An internal error occurred"

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps a service error to its HTTP status and a JSON error
// body. Unknown errors are logged and surfaced as a generic 500 so
// storage details never leak to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)

	if status == http.StatusInternalServerError && !errors.Is(err, apperrs.ErrPriceUnavailable) {
		log.Error("internal error", zap.Error(err))
		message = internalErrorMessage
	}

	s.writeJSON(w, status, errorResponse{Error: message})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrs.ErrInvalidQuantity),
		errors.Is(err, apperrs.ErrInvalidTicker),
		errors.Is(err, apperrs.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrs.ErrInvalidCredentials),
		errors.Is(err, apperrs.ErrExpiredToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperrs.ErrMissingToken),
		errors.Is(err, apperrs.ErrInvalidToken):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, apperrs.ErrUserNotFound),
		errors.Is(err, apperrs.ErrPortfolioNotFound),
		errors.Is(err, apperrs.ErrHoldingNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperrs.ErrNameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, apperrs.ErrPriceUnavailable):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
