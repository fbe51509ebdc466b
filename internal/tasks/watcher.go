package tasks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// watchSettle is how long the folders must stay quiet before a rescan is signalled.
const watchSettle = 500 * time.Millisecond

// Watcher signals when audio files are added, removed or renamed in the music folders.
//
// Bursts of events (a folder copy) collapse into one signal after the folders settle,
// and signals are rate limited to one per minimum interval.
type Watcher struct {
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	settle  time.Duration
	changes chan struct{}
	logger  *log.Logger
}

// NewWatcher watches dirs. Missing directories are skipped with a warning.
func NewWatcher(dirs []string, minInterval time.Duration, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Every(max(minInterval, time.Millisecond)), 1),
		settle:  watchSettle,
		changes: make(chan struct{}, 1),
		logger:  shared.WithLogger(logger, "component", "watcher"),
	}

	watched := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			w.logger.Warn("not watching music folder", "dir", dir, "error", err)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch music folder", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	w.logger.Debug("watching music folders", "count", watched)
	return w, nil
}

// Changes delivers one value per settled burst of relevant events.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	settle := time.NewTimer(w.settle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if relevant(event) {
				w.logger.Debug("music folder changed", "path", event.Name, "op", event.Op)
				settle.Reset(w.settle)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-settle.C:
			if r := w.limiter.Reserve(); r.Delay() > 0 {
				settle.Reset(r.Delay())
				r.Cancel()
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether event adds, removes or renames an audio file.
func relevant(event fsnotify.Event) bool {
	if !engine.IsAudioFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
