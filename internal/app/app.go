package app

import (
	"io"
	"log/slog"

	"github.com/vk/seriesgrid/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	store  store.Store
	config *Config
}

// NewApp is the constructor for the main application. Reports go to outW
// unless an output location is configured; logs go to logW. A nil store
// selects the default file, HTTP and S3 backends.
func NewApp(outW, logW io.Writer, cfg *Config, st store.Store) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if st == nil {
		st = store.NewRouter(store.AWSConfig{Region: cfg.AWSRegion, Profile: cfg.AWSProfile})
	}

	return &App{
		outW:   outW,
		logger: logger,
		store:  st,
		config: cfg,
	}
}
