package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive player with audio, history and background timers.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session, closeFn, err := r.openSession(ctx, sessionOpts{audio: true, record: true})
	if err != nil {
		return err
	}
	defer closeFn()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := session.Run(ctx); err != nil {
			r.logger.Error("background tasks stopped", "error", err)
		}
	}()

	err = ui.Run(ctx, session)
	cancel()
	<-done

	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
