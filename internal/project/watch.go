package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherFailed indicates the filesystem watcher could not be set up.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// Watcher fires a Notifier when catalog files change on disk, for example
// after a hand edit in an editor. It only signals; consumers reload.
//
// The directory is watched rather than the files themselves because atomic
// saves replace the file, which drops a watch on the old inode.
type Watcher struct {
	dir      string
	files    map[string]bool
	notifier *Notifier
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher starts watching dir for changes to the named files (base
// names). Events are already collected when NewWatcher returns; call Run
// to deliver them. Run closes the watcher when it returns.
func NewWatcher(dir string, files []string, notifier *Notifier, opts ...Option) (*Watcher, error) {
	o := buildOptions(opts)

	err := o.fs.MkdirAll(dir, dataDirPerms)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWatcherFailed, dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatcherFailed, err)
	}

	err = fw.Add(dir)
	if err != nil {
		_ = fw.Close()

		return nil, fmt.Errorf("%w: watch %s: %w", ErrWatcherFailed, dir, err)
	}

	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[filepath.Base(f)] = true
	}

	return &Watcher{
		dir:      dir,
		files:    names,
		notifier: notifier,
		watcher:  fw,
		debounce: o.debounce,
		log:      o.log,
	}, nil
}

// Watch returns a Watcher for the catalog documents that fires the
// catalog's refresh signal.
func (c *Catalog) Watch(opts ...Option) (*Watcher, error) {
	files := []string{ProjectsFileName, FoldersFileName}

	return NewWatcher(c.Dir(), files, c.notifier, append([]Option{WithLogger(c.log)}, opts...)...)
}

// Run delivers change signals until ctx is done. A burst of events within
// the debounce window results in one signal.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.log.Debug("catalog file changed",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			timerCh = timer.C

		case <-timerCh:
			timerCh = nil

			w.notifier.Fire()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Base(event.Name)] {
		return false
	}

	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) ||
		event.Has(fsnotify.Remove)
}
