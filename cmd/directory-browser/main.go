// Command directory-browser fetches the user directory and lets the user
// page through it from the terminal. It optionally broadcasts every state
// change over Redis and serves /health, /state and /metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/user-directory-client/internal/config"
	"github.com/Sternrassler/user-directory-client/pkg/broadcast"
	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/controller"
	"github.com/Sternrassler/user-directory-client/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const serviceName = "directory-browser"

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("directory-browser failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging(serviceName))
	logger := logging.NewLogger(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := client.New(cfg.Client())
	if err != nil {
		return err
	}
	defer gateway.Close()

	ctrlCfg := cfg.Controller()

	if cfg.BroadcastEnabled() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}

		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}

		publisher, err := broadcast.NewPublisher(rdb, cfg.RedisChannel)
		if err != nil {
			return err
		}
		ctrlCfg.Observers = append(ctrlCfg.Observers, publisher)

		logger.Info().Str("addr", opts.Addr).Str("channel", publisher.Channel()).Msg("Broadcasting state to Redis")
	}

	ctrl, err := controller.New(gateway, ctrlCfg)
	if err != nil {
		return err
	}

	if cfg.OpsEnabled() {
		srv := &http.Server{
			Addr:              cfg.OpsAddr,
			Handler:           newOpsRouter(ctrl),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info().Str("addr", cfg.OpsAddr).Msg("Starting ops server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Ops server failed")
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("Ops server shutdown")
			}
			logger.Info().Msg("Ops server stopped")
		}()
	}

	logger.Info().
		Str("resource", gateway.Endpoint()).
		Int("page_size", cfg.PageSize).
		Dur("fetch_delay", cfg.FetchDelay).
		Msg("Directory browser ready")

	return runREPL(ctx, os.Stdin, os.Stdout, ctrl)
}
