package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/CaboRojo/stockfolio/internal/auth"
	"github.com/CaboRojo/stockfolio/internal/common/config"
	"github.com/CaboRojo/stockfolio/internal/ledger"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"go.uber.org/zap"
)

// Server is the HTTP front of the service: routing, CORS, bearer-token
// checks and JSON encoding. All domain behavior lives behind the auth
// and ledger services.
type Server struct {
	router *chi.Mux
	server *http.Server

	authService   *auth.Service
	tokens        *auth.TokenService
	ledgerService *ledger.Service
}

func New(cfg *config.HTTP, authService *auth.Service, tokens *auth.TokenService, ledgerService *ledger.Service) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		authService:   authService,
		tokens:        tokens,
		ledgerService: ledgerService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	// Preflight OPTIONS on every route answers 200 with no body.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Post("/register", s.handleRegister)
	s.router.Post("/login", s.handleLogin)

	s.router.Get("/assets/{userId}", s.handleAssetDetails)
	s.router.Get("/stocks/{symbol}", s.handleHistoricalPrices)

	s.router.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/logout", s.handleLogout)
		r.Get("/portfolio/{userId}", s.handlePortfolio)
		r.Post("/users/{userId}/buy/{symbol}", s.handleBuy)
		r.Post("/users/{userId}/remove/{symbol}", s.handleSell)
	})
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	log.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}
