package config

import (
	"sync"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		Port         string `env:"PORT" envDefault:"8080"`
		AllowOrigins string `env:"ALLOW_ORIGINS"`

		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

		DatabasePath string `env:"DB_PATH" envDefault:"data/sync-party.db"`

		// Heartbeat cadence and the staleness window for the online
		// determination, both in milliseconds.
		SyncStatusIntervalDelay     int64 `env:"SYNC_STATUS_INTERVAL" envDefault:"1000"`
		SyncStatusIntervalTolerance int64 `env:"SYNC_STATUS_TOLERANCE" envDefault:"1500"`
	}
)

var (
	once sync.Once

	Conf Config
)

func load() {
	_ = godotenv.Load()

	if err := env.Parse(&Conf); err != nil {
		panic(err)
	}
}

func init() {
	once.Do(load)
}
