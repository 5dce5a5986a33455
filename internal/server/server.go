package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzhttp"

	"logtap/internal/config"
	"logtap/internal/history"
	"logtap/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server serves the log search API.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *history.Store
	handler http.Handler
	started time.Time

	listener net.Listener
	server   *http.Server
}

// New wires the router. store may be nil when history is disabled.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server requires config")
	}

	s := &Server{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "server"),
		store:   store,
		started: time.Now(),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestID)
	router.Use(s.logRequests)
	router.Get("/logs", s.handleLogs)
	router.Get("/healthz", s.handleHealth)

	s.handler = gzhttp.GzipHandler(router)
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// WriteTimeout stays unset: /logs responses stream for as long
		// as the consumer keeps pulling.
	}
	return s, nil
}

// Handler returns the root handler, which tests drive through httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening on the configured bind address and shuts the
// listener down when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Server.Bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Bind, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop drains in-flight requests and closes the listener.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}
