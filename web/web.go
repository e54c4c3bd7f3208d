// Package web is a small HTTP server reporting the bot's status.
package web

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/common/duration"
	"go.uber.org/zap"
)

// Status is the bot's current status.
type Status struct {
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Guilds        int    `json:"guilds"`
	Commands      int    `json:"commands"`
	LatencyMs     int64  `json:"latency_ms"`
	Snipes        int    `json:"snipes"`
	CachedConfigs int    `json:"cached_configs"`
}

// StatusFunc returns the bot's current status.
type StatusFunc func() Status

// BotStatus returns a StatusFunc for b.
func BotStatus(b *bot.Bot) StatusFunc {
	return func() Status {
		uptime := b.Uptime()

		s := Status{
			Version:       common.Version(),
			Uptime:        duration.Format(uptime.Round(time.Second)),
			UptimeSeconds: int64(uptime / time.Second),
			Commands:      b.Commands.Len(),
			Snipes:        b.Snipes.Len(),
			CachedConfigs: b.Settings.Len(),
		}

		if guilds, err := b.State.Cabinet.Guilds(); err == nil {
			s.Guilds = len(guilds)
		}
		if gw := b.State.Gateway(); gw != nil {
			s.LatencyMs = gw.Latency().Milliseconds()
		}
		return s
	}
}

// Server serves the status endpoints.
type Server struct {
	log    *zap.SugaredLogger
	status StatusFunc
	http   *http.Server
}

// New returns a Server listening on addr.
func New(addr string, status StatusFunc, log *zap.SugaredLogger) *Server {
	s := &Server{
		log:    log,
		status: status,
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the server's routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, s.status())
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Status server listening on %v", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving status")
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.http.Shutdown(sctx)
	if err != nil {
		return errors.Wrap(err, "shutting down status server")
	}
	return nil
}
