// Package slogx configures the process-wide logger from the environment.
// Import it for its side effect:
//
//	import _ "github.com/lambdahouse/accounts/internal/slogx"
package slogx

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

func init() {
	level := slog.LevelInfo
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	ho := slog.HandlerOptions{Level: level}
	var h slog.Handler = ho.NewTextHandler(os.Stderr)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = ho.NewJSONHandler(os.Stderr)
	}
	slog.SetDefault(slog.New(h))
}
