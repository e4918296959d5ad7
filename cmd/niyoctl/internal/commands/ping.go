package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
)

// PingCmd checks that the backend answers HTTP.
type PingCmd struct {
	BaseURL string        `name:"base-url" help:"Backend API root." required:"" env:"API_BASE_URL"`
	Timeout time.Duration `help:"Give up after this long." default:"5s"`
}

func (p *PingCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := apiclient.New(apiclient.Config{BaseURL: p.BaseURL, Logger: globals.logger()})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	res, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping %s: %w", p.BaseURL, err)
	}
	_, err = fmt.Fprintf(globals.out(), "%s answered %d in %s\n", client.BaseURL(), res.Status, time.Since(start).Round(time.Millisecond))
	return err
}
