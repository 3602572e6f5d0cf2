// Package cli holds the environment and logging setup shared by the
// preview commands.
package cli

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Env returns the trimmed value of k, or def when it is unset or blank.
func Env(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

// EnvInt returns k parsed as an int, or def when unset or malformed.
func EnvInt(k string, def int) int {
	n, err := strconv.Atoi(Env(k, ""))
	if err != nil {
		return def
	}
	return n
}

// EnvDuration returns k parsed as a duration, or def when unset or malformed.
func EnvDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(Env(k, ""))
	if err != nil {
		return def
	}
	return d
}

// NewLogger creates a slog logger writing to w. level is one of debug,
// info, warn or error; format is json or text.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
