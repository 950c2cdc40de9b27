// Package server is the habits REST API consumed by the trackit client.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jask/trackit/internal/database/repository"
	"github.com/jask/trackit/internal/metrics"
)

// HabitStore persists habits per user.
type HabitStore interface {
	List(ctx context.Context, userID string) ([]repository.Habit, error)
	Create(ctx context.Context, userID, name string, days []int) (repository.Habit, error)
}

// TokenParser turns a bearer token into a user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Pinger reports database readiness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	habits   HabitStore
	tokens   TokenParser
	db       Pinger
	log      *zap.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

type Deps struct {
	Habits   HabitStore
	Tokens   TokenParser
	DB       Pinger
	Log      *zap.Logger
	Registry *prometheus.Registry
}

func New(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Server{
		habits:   d.Habits,
		tokens:   d.Tokens,
		db:       d.DB,
		log:      log,
		metrics:  metrics.New(reg),
		gatherer: reg,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.observe)

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", s.readyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/habits").Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("", s.listHabits).Methods(http.MethodGet)
	api.HandleFunc("", s.createHabit).Methods(http.MethodPost)

	// mux skips r.Use middleware for these two, so they are wrapped here.
	r.NotFoundHandler = s.unmatched(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = s.unmatched(http.StatusMethodNotAllowed, "method not allowed")
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
