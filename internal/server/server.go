// Package server exposes dealing and classification over HTTP for a browser
// front end, with a WebSocket endpoint that reveals a dealt hand card by card.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/arcanaland/pokerhand/internal/deck"
	"github.com/arcanaland/pokerhand/internal/hand"
)

// Dealer deals one complete hand per call.
type Dealer interface {
	DealHand(ctx context.Context) (*hand.Hand, deck.State, error)
}

// Options tunes a Server. Zero values are usable.
type Options struct {
	// RevealDelay separates the card messages sent on /ws/deal.
	RevealDelay time.Duration
	// AllowedOrigins is handed to CORS and the WebSocket origin check.
	// Empty or "*" allows every origin.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server serves the hand API and the dealing WebSocket.
type Server struct {
	dealer      Dealer
	revealDelay time.Duration
	origins     []string
	log         *slog.Logger
	router      *mux.Router
}

// New returns a Server dealing from dealer.
func New(dealer Dealer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		dealer:      dealer,
		revealDelay: opts.RevealDelay,
		origins:     origins,
		log:         logger,
		router:      mux.NewRouter(),
	}
	s.RegisterRoutes(s.router)
	s.router.Use(s.logRequests)
	return s
}

// RegisterRoutes registers all API routes on r.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/hands", s.DealHand).Methods(http.MethodPost)
	r.HandleFunc("/api/hands/classify", s.ClassifyHand).Methods(http.MethodPost)
	r.HandleFunc("/api/rankings", s.ListRankings).Methods(http.MethodGet)
	r.HandleFunc("/health", s.Health).Methods(http.MethodGet)

	r.HandleFunc("/ws/deal", s.DealSocket)
}

// Handler returns the router wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request", "method", r.Method, "uri", r.RequestURI, "elapsed", time.Since(start))
	})
}

func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range s.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
