package backend

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tourofheroes/heroes/internal/storage"
)

// SeedWatcher reloads the store whenever the seed file changes on disk.
type SeedWatcher struct {
	path    string
	files   storage.Store
	store   *Store
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// WatchSeed starts watching path and resets store with its content after every
// write. The file's directory is watched so editors that replace the file
// are noticed too. Watching stops when ctx is done.
func WatchSeed(ctx context.Context, files storage.Store, path string, store *Store) (*SeedWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create seed watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	sw := &SeedWatcher{
		path:    abs,
		files:   files,
		store:   store,
		watcher: watcher,
		logger:  slog.Default().With("component", "backend.seed", "path", abs),
	}
	go sw.run(ctx)
	sw.logger.Debug("Watching hero seed for changes")
	return sw, nil
}

func (sw *SeedWatcher) run(ctx context.Context) {
	defer sw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.handle(ctx, event)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Error("Seed watcher error", "error", err)
		}
	}
}

func (sw *SeedWatcher) handle(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != sw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	heroes, err := storage.ReadHeroes(ctx, sw.files, sw.path)
	if err != nil {
		// A half-written file fails to decode; the next write retries.
		sw.logger.Warn("Ignoring unreadable hero seed", "error", err)
		return
	}
	sw.store.Reset(heroes)
	sw.logger.Info("Reloaded hero seed", "count", len(heroes))
}
