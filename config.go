package thimble

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel  = "THIMBLE_LOG_LEVEL"
	EnvLogFormat = "THIMBLE_LOG_FORMAT"
)

// EnvConfig is the container configuration read from the environment.
type EnvConfig struct {
	LogLevel  slog.Level
	LogFormat string
}

// LoadEnv reads configuration from the process environment, falling back
// to the given .env files. Files that do not exist are skipped; the
// process environment always wins.
func LoadEnv(files ...string) (EnvConfig, error) {
	values := make(map[string]string)

	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		read, err := godotenv.Read(file)
		if err != nil {
			return EnvConfig{}, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range read {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	}

	cfg := EnvConfig{LogLevel: slog.LevelInfo, LogFormat: "text"}

	if level := lookup(EnvLogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return EnvConfig{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if format := strings.ToLower(lookup(EnvLogFormat)); format != "" {
		switch format {
		case "text", "json":
			cfg.LogFormat = format
		default:
			return EnvConfig{}, fmt.Errorf("%s: unknown format %q", EnvLogFormat, format)
		}
	}

	return cfg, nil
}

// NewLogger builds a logger writing to w in the configured format.
func (e EnvConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: e.LogLevel}
	if e.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Options turns the configuration into container options logging to w.
func (e EnvConfig) Options(w io.Writer) []Option {
	return []Option{WithLogger(e.NewLogger(w))}
}

func LoggerFromEnv(files ...string) (*slog.Logger, error) {
	cfg, err := LoadEnv(files...)
	if err != nil {
		return nil, err
	}
	return cfg.NewLogger(os.Stderr), nil
}

// OptionsFromEnv is LoadEnv followed by Options on stderr.
func OptionsFromEnv(files ...string) ([]Option, error) {
	cfg, err := LoadEnv(files...)
	if err != nil {
		return nil, err
	}
	return cfg.Options(os.Stderr), nil
}
