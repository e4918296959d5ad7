// Package commands implements the niyoctl subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
)

// Globals carries the flags shared by every command.
type Globals struct {
	Debug   bool
	Version string

	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (g *Globals) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g != nil && g.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
