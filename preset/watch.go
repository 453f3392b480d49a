package preset

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads fname over base whenever it changes and hands every good
// reload to onChange. Bad files are logged and skipped, so a half-saved
// edit never replaces a working set. It returns when ctx is done.
func Watch(ctx context.Context, fname string, base *Set, onChange func(*Set), log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its folder.
	dir := filepath.Dir(fname)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	log.Info("watching presets", "file", fname)

	want := filepath.Clean(fname)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != want {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s, err := LoadFile(fname, base)
			if err != nil {
				log.Warn("presets not reloaded", "err", err)
				continue
			}
			log.Info("presets reloaded", "file", fname)
			onChange(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher", "err", err)
		}
	}
}
