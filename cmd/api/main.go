package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/ledger/internal/api"
	"github.com/fastprodman/ledger/internal/infra/logging"
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	pgrepos "github.com/fastprodman/ledger/internal/repos/postgres"
	"github.com/fastprodman/ledger/internal/services/accounts"
	"github.com/fastprodman/ledger/internal/services/ledger"
	"github.com/fastprodman/ledger/pkg/envconf"
	"github.com/fastprodman/ledger/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	err := envconf.LoadDotEnv()
	if err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := new(apiConfig)

	err = envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel, slog.String("service", "ledger-api"))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.AddNamed("postgres", func(context.Context) error {
		return db.Close()
	})

	store := pgrepos.New(db)

	// --- Services ---
	ledgerSrv := ledger.New(store, ledger.WithOpTimeout(cfg.Ledger.OpTimeout))
	accountsSrv := accounts.New(store, accounts.WithBcryptCost(cfg.BcryptCost))

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, ledgerSrv, accountsSrv)

	shutdownqueue.AddNamed("http server", func(c context.Context) error {
		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", slog.Int("port", int(cfg.Port)))

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
