// main.go
//
// Entry point for the hangman HTTP server.
//   - Loads .env + environment config.
//   - Configures zerolog (console output on a terminal, JSON otherwise).
//   - Loads the dictionary, opens and migrates SQLite.
//   - Serves the API until SIGINT/SIGTERM, then shuts down gracefully.
//
// The console game lives in cmd/hangman.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/storage"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

const (
	sweepInterval = 5 * time.Minute
	sessionMaxAge = 24 * time.Hour
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	dict, err := words.FromEnv(cfg.DictionaryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv := httpserver.New(cfg, dict, store.NewMemoryStore(), db)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Int("words", dict.Len()).Msg("starting hangman server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.RunJanitor(gctx, sweepInterval, sessionMaxAge)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogging applies the level and picks a human-friendly writer when
// stderr is a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
