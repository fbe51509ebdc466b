package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/nmp/internal/server"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// Serve runs the player headless behind the HTTP control API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}

	session, closeFn, err := r.openSession(ctx, sessionOpts{audio: true, record: true})
	if err != nil {
		return err
	}
	defer closeFn()

	r.writePlain("🎧 Serving the player on http://%s/api/status\n", cfg.Addr())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return session.Run(ctx) })
	g.Go(func() error { return server.New(cfg, session, r.logger).Run(ctx) })

	err = g.Wait()
	r.logger.Info("shutting down")
	return err
}
