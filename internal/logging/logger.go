package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/authd/internal/config"
)

// NewLogger creates a structured zerolog.Logger at the level given by the config.
func NewLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "authd").Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
