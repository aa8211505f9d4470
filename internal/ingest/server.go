// Package ingest is the HTTP front through which a streaming client delivers
// telemetry snapshots to the stats engine and reads the panel back.
package ingest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	jsoniter "github.com/json-iterator/go"

	"github.com/jiyeyuran/streamstats"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes bounds a single snapshot body.
const maxBodyBytes = 1 << 20

type Server struct {
	engine *streamstats.Engine
	logger logr.Logger
	router chi.Router
}

type playerCountRequest struct {
	Count uint32 `json:"count"`
}

type statsResponse struct {
	SessionId string             `json:"sessionId"`
	Stats     []streamstats.Stat `json:"stats"`
}

type sessionResponse struct {
	SessionId string `json:"sessionId"`
}

func NewServer(engine *streamstats.Engine) *Server {
	s := &Server{
		engine: engine,
		logger: streamstats.NewLogger("Ingest"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleGetStats)
	r.Post("/stats", s.handlePostStats)
	r.Post("/latency", s.handlePostLatency)
	r.Post("/players", s.handlePostPlayers)
	r.Post("/session", s.handleNewSession)
	r.Post("/disconnect", s.handleDisconnect)
	r.Post("/triggers/{section}/start", s.handleStartTrigger)

	s.router = r

	return s
}

// Handler returns the HTTP handler serving the routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.V(1).Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"requestId", middleware.GetReqID(r.Context()))
		}()

		next.ServeHTTP(ww, r)
	})
}
