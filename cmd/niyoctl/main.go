package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/niyo-hr/niyo-web/cmd/niyoctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Session commands.SessionCmd `cmd:"" help:"Encode or decode session cookies"`
		Ping    commands.PingCmd    `cmd:"" help:"Check that the backend API answers"`
		Debug   bool                `help:"Enable debug logging."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("niyoctl"),
		kong.Description("Operational helpers for the Niyo HR web tier."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
