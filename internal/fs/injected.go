package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Op names a [FS] method that [Faulty] can fail.
type Op string

// Operations [Faulty] can intercept.
const (
	OpOpen            Op = "open"
	OpReadFile        Op = "read-file"
	OpWriteFileAtomic Op = "write-file-atomic"
	OpMkdirAll        Op = "mkdir-all"
	OpStat            Op = "stat"
	OpRemove          Op = "remove"
	OpLock            Op = "lock"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Op  Op
	Err error
}

// Error returns the underlying error's message prefixed with the op.
func (e *InjectedError) Error() string {
	return "injected " + string(e.Op) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps another [FS] and fails the operations registered with
// [Faulty.Fail]. Everything else passes through.
//
// Faulty is safe for concurrent use.
type Faulty struct {
	inner FS

	mu    sync.Mutex
	fails map[Op]fault
	calls map[Op]int
}

// fault is a registered failure. An empty base matches every path.
type fault struct {
	err  error
	base string
}

// NewFaulty wraps inner. Panics if inner is nil.
func NewFaulty(inner FS) *Faulty {
	if inner == nil {
		panic("inner fs is nil")
	}

	return &Faulty{
		inner: inner,
		fails: make(map[Op]fault),
		calls: make(map[Op]int),
	}
}

// Fail makes every subsequent call of op return err wrapped in [InjectedError].
func (f *Faulty) Fail(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fails[op] = fault{err: err}
}

// FailPath is like [Faulty.Fail] but only fails calls of op on paths whose
// base name is base. Other paths pass through.
func (f *Faulty) FailPath(op Op, base string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fails[op] = fault{err: err, base: base}
}

// Heal removes an injected failure.
func (f *Faulty) Heal(op Op) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.fails, op)
}

// Calls returns how often op was invoked, failed or not.
func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[op]
}

func (f *Faulty) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++

	flt, ok := f.fails[op]
	if !ok {
		return nil
	}

	if flt.base != "" && filepath.Base(path) != flt.base {
		return nil
	}

	return &InjectedError{Op: op, Err: flt.err}
}

func (f *Faulty) Open(path string) (*os.File, error) {
	if err := f.check(OpOpen, path); err != nil {
		return nil, err
	}

	return f.inner.Open(path)
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.inner.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, r io.Reader) error {
	if err := f.check(OpWriteFileAtomic, path); err != nil {
		return err
	}

	return f.inner.WriteFileAtomic(path, r)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.inner.MkdirAll(path, perm)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.check(OpStat, path); err != nil {
		return nil, err
	}

	return f.inner.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpStat, path); err != nil {
		return false, err
	}

	return f.inner.Exists(path)
}

func (f *Faulty) Remove(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}

	return f.inner.Remove(path)
}

func (f *Faulty) Lock(path string) (Locker, error) {
	if err := f.check(OpLock, path); err != nil {
		return nil, err
	}

	return f.inner.Lock(path)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
