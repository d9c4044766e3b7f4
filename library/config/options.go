package config

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(*Config)

// WithLogLevel applies unless LOG_LEVEL is set.
func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
			c.Log.LogLevel = level
		}
	}
}

// WithWriteTimeout applies unless HTTP_WRITE is set.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		if _, ok := os.LookupEnv("HTTP_WRITE"); !ok {
			c.Server.WriteTimeout = d
		}
	}
}

// WithStorage applies unless LIBRARY_STORAGE is set.
func WithStorage(storage string) Option {
	return func(c *Config) {
		if _, ok := os.LookupEnv("LIBRARY_STORAGE"); !ok {
			c.Storage = storage
		}
	}
}
