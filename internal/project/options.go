package project

import (
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/pm/internal/fs"
)

// Option configures a Store, IconStore, Catalog or Watcher.
type Option func(*options)

type options struct {
	fs       fs.FS
	log      *zap.Logger
	debounce time.Duration
}

const defaultDebounce = 100 * time.Millisecond

func buildOptions(opts []Option) options {
	o := options{
		fs:       fs.NewReal(),
		log:      zap.NewNop(),
		debounce: defaultDebounce,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithFS replaces the filesystem. Tests use it to inject failures.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDebounce sets how long the Watcher waits for a burst of file events
// to settle before it signals a refresh.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}
