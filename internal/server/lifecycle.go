package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const shutdownTimeout = 15 * time.Second

// Register starts the HTTP server with the fx application and drains it on stop.
func Register(lc fx.Lifecycle, s *Server, cfg *config.Config, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("graceful shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	})
}
