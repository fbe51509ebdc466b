package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/repositories"
	"github.com/desertthunder/nmp/internal/store"
	"github.com/desertthunder/nmp/internal/tasks"
)

// sessionOpts selects what a command's session is wired to.
type sessionOpts struct {
	audio    bool // open the speaker and desktop notifications instead of the silent sink
	record   bool // write plays and scans to the history database
	progress chan<- tasks.ProgressUpdate
}

// openSession builds and starts a session over the configured folders.
// The returned func closes the session and any database it opened.
func (r *Runner) openSession(ctx context.Context, opts sessionOpts) (*tasks.Session, func(), error) {
	var sink player.AudioSink = player.NewSilent()
	var notifier tasks.Notifier
	if opts.audio {
		sink = r.audioSink()
		notifier = r.notifier
	}

	var (
		db       *sql.DB
		recorder tasks.Recorder
	)
	if opts.record {
		var err error
		if db, err = r.openDB(r.config.Database); err != nil {
			r.logger.Warn("listening history disabled", "error", err)
		} else {
			recorder = newRecorder(db)
		}
	}

	session := tasks.NewSession(r.config, tasks.Options{
		Store:    store.NewFileStore(r.config, r.logger),
		Sink:     sink,
		Recorder: recorder,
		Notifier: notifier,
		ReadTags: store.ReadTags,
		Logger:   r.logger,
	})

	closeFn := func() {
		if err := session.Close(); err != nil {
			r.logger.Warn("failed to close session", "error", err)
		}
		if db != nil {
			db.Close()
		}
	}

	if err := session.Start(ctx, opts.progress); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, closeFn, nil
}

// withSession runs fn against a silent, unrecorded session and saves it afterwards.
func (r *Runner) withSession(ctx context.Context, fn func(*tasks.Session) error) error {
	session, closeFn, err := r.openSession(ctx, sessionOpts{})
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(session)
}

// audioSink opens the speaker, falling back to silent playback when no device is available.
func (r *Runner) audioSink() player.AudioSink {
	if r.sink != nil {
		return r.sink
	}

	speaker, err := player.NewSpeaker(r.config.Player, r.logger)
	if err != nil {
		r.logger.Warn("audio output unavailable, playing silently", "error", err)
		return player.NewSilent()
	}
	return speaker
}

func newRecorder(db *sql.DB) *repositories.HistoryRecorder {
	return repositories.NewHistoryRecorder(repositories.NewHistoryRepository(db), repositories.NewScanRepository(db))
}
