package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/ledger/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// BcryptCost applies to newly registered passwords.
	BcryptCost int `env:"APP_BCRYPT_COST" envDefault:"10"`

	Postgres config.PostgresConfig
	Ledger   config.LedgerConfig
}
