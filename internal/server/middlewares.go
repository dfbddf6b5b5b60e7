package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/CaboRojo/stockfolio/internal/apperrs"
)

type ctxKey string

const ctxUserID ctxKey = "userID"

// authMiddleware validates the bearer credential and stores the token's
// user identity in the request context. It does not check that the
// identity matches any path parameter: authorization beyond "is this a
// valid user" is out of scope.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.writeError(w, apperrs.ErrMissingToken)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			s.writeError(w, apperrs.ErrInvalidToken)
			return
		}

		userID, err := s.tokens.Parse(parts[1])
		if err != nil {
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
