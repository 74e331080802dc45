// Package api serves rankings and player scores over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/gridiron/core"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// NewRouter wires middleware and routes. A non-nil snap is shared by every
// request instead of loading the league per request.
func NewRouter(baseCfg *contract.Config, mgr contract.CacheManager, snap *schema.LeagueSnapshot) http.Handler {
	h := &handler{baseCfg: baseCfg, mgr: mgr, snap: snap}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/rankings", h.rankings)
		r.Get("/players/{id}", h.player)
		r.Get("/weights", h.weights)
	})
	return r
}

// Serve loads the league once and serves the API on cfg.Addr until ctx is done.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	snap, err := core.LoadLeague(core.WithSuppressHeader(ctx), cfg, mgr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg, mgr, snap),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "🏈 Gridiron API listening on %s (%d players)\n", cfg.Addr, len(snap.Players))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			contract.LogWarn("Graceful shutdown failed", err)
			return srv.Close()
		}
		return nil
	}
}
