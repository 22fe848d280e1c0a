/*
NAME
  watch.go

DESCRIPTION
  watch.go provides conversion of DRC recordings as they are written to a
  directory.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettle is the default time a recording must go unmodified before it
// is converted.
const defaultSettle = 2 * time.Second

var errWatcherClosed = errors.New("watcher closed")

// Watcher converts DRC recordings created or written in a directory. A
// recording is converted once it has not been written to for Settle.
type Watcher struct {
	// Settle is the time a recording must go unmodified before conversion.
	Settle time.Duration

	cfg     *Config
	dir     string
	w       *fsnotify.Watcher
	pending map[string]time.Time // Path to time of last write.
}

// NewWatcher returns a Watcher for dir. Events are collected from the time
// NewWatcher returns, but recordings are only converted while Run is running.
func NewWatcher(c *Config, dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	err = w.Add(dir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", dir, err)
	}
	return &Watcher{
		Settle:  defaultSettle,
		cfg:     c,
		dir:     dir,
		w:       w,
		pending: make(map[string]time.Time),
	}, nil
}

// Run converts recordings until ctx is cancelled, calling done, if not nil,
// with the outcome of each conversion. Failed conversions are logged and do
// not stop the watcher. A Settle of zero or less is replaced by the default.
func (w *Watcher) Run(ctx context.Context, done func(Result, error)) error {
	if w.Settle <= 0 {
		w.cfg.Logger.Info("Settle bad or unset, defaulting", "Settle", defaultSettle)
		w.Settle = defaultSettle
	}
	w.cfg.Logger.Info("watching for recordings", "dir", w.dir)
	tick := time.NewTicker(w.Settle / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.w.Events:
			if !ok {
				return errWatcherClosed
			}
			if !isRecording(ev.Name) || !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) {
				continue
			}
			w.cfg.Logger.Debug("recording modified", "path", ev.Name, "op", ev.Op.String())
			w.pending[ev.Name] = time.Now()

		case err, ok := <-w.w.Errors:
			if !ok {
				return errWatcherClosed
			}
			w.cfg.Logger.Warning("watcher error", "error", err.Error())

		case now := <-tick.C:
			for p, t := range w.pending {
				if now.Sub(t) < w.Settle {
					continue
				}
				delete(w.pending, p)
				r, err := Convert(w.cfg, p, w.cfg.outputFor(p))
				if err != nil {
					w.cfg.Logger.Error("could not convert recording", "input", p, "error", err.Error())
				}
				if done != nil {
					done(r, err)
				}
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.w.Close()
}

// Watch converts recordings written to dir until ctx is cancelled.
func Watch(ctx context.Context, c *Config, dir string) error {
	w, err := NewWatcher(c, dir)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, nil)
}

func isRecording(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".drc")
}
