package catalog

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	onChange func(string) // called with path that changed

	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		lastMTime: make(map[string]time.Time),
	}
}

// Run primes the modification times, then polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	w.scan(true)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.scan(false)
		case <-ctx.Done():
			return nil
		}
	}
}

// scan records mtimes and, unless priming, reports files that moved forward.
func (w *FileWatcher) scan(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: keep the last known mtime
			slog.Debug("watch stat failed", "path", p, "error", err)
			continue
		}
		mt := fi.ModTime()
		last, seen := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime || !seen || !mt.After(last) {
			continue
		}
		slog.Info("watched file changed", "path", p)
		if w.onChange != nil {
			w.onChange(p)
		}
	}
}
