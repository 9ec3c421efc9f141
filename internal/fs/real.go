package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// ErrLockTimeout is returned by [Real.Lock] when the lock could not be
// acquired within the timeout.
var ErrLockTimeout = errors.New("lock timeout")

// Real implements [FS] using the real filesystem.
//
// All methods are passthroughs to the [os] package with identical behavior
// and error semantics. The exceptions are [Real.Exists] which wraps
// [os.Stat], [Real.WriteFileAtomic] which uses atomic file writes, and
// [Real.Lock] which provides flock-based locking.
type Real struct {
	lockTimeout time.Duration
}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{lockTimeout: defaultLockTimeout}
}

// WithLockTimeout returns a copy of r whose [Real.Lock] gives up after d.
func (r *Real) WithLockTimeout(d time.Duration) *Real {
	return &Real{lockTimeout: d}
}

// A passthrough wrapper for [os.Open].
func (r *Real) Open(path string) (*os.File, error) {
	return os.Open(path)
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes r to path via temp file + rename.
func (r *Real) WriteFileAtomic(path string, reader io.Reader) error {
	return atomic.WriteFile(path, reader)
}

// A passthrough wrapper for [os.MkdirAll].
func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// A passthrough wrapper for [os.Stat].
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a file exists using [os.Stat].
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// A passthrough wrapper for [os.Remove].
func (r *Real) Remove(path string) error {
	return os.Remove(path)
}

// --- Locking ---

const (
	defaultLockTimeout = 2 * time.Second
	maxLockBackoff     = 25 * time.Millisecond
	lockPerms          = 0o644
	dirPerms           = 0o755
	locksDirName       = ".locks"
)

// realLock holds an exclusive file lock.
type realLock struct {
	path string
	file *os.File
}

// Close releases the lock.
// Order matters: remove while holding lock, then unlock, then close.
func (l *realLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = os.Remove(l.path)
	_ = flockRetryEINTR(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil

	return err
}

// Lock acquires an exclusive lock for path.
//
// The lock file lives in a .locks subdirectory next to path so the
// directory holding the catalog files is not touched by lock churn.
// Acquisition polls a non-blocking flock with backoff until the timeout,
// so nothing is left waiting in the kernel after giving up. A lock file
// replaced between open and flock is detected by comparing inodes and
// retried.
func (r *Real) Lock(path string) (Locker, error) {
	locksDir := filepath.Join(filepath.Dir(path), locksDirName)
	lockPath := filepath.Join(locksDir, filepath.Base(path)+".lock")

	timeout := r.lockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}

	deadline := time.Now().Add(timeout)
	backoff := time.Millisecond

	for {
		err := os.MkdirAll(locksDir, dirPerms)
		if err != nil {
			return nil, fmt.Errorf("creating locks dir: %w", err)
		}

		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
		if err != nil {
			return nil, fmt.Errorf("open lock file: %w", err)
		}

		err = acquire(file, lockPath)
		if err == nil {
			return &realLock{path: lockPath, file: file}, nil
		}

		_ = file.Close()

		if !errors.Is(err, errWouldBlock) && !errors.Is(err, errInodeMismatch) {
			return nil, err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}

		time.Sleep(min(backoff, remaining))

		backoff = min(backoff*2, maxLockBackoff)
	}
}

var (
	errWouldBlock    = errors.New("lock held elsewhere")
	errInodeMismatch = errors.New("lock file replaced")
)

// acquire takes a non-blocking exclusive flock on file and checks that
// file is still the one at lockPath. On failure the flock is released but
// file is left open for the caller to close.
func acquire(file *os.File, lockPath string) error {
	fd := int(file.Fd())

	err := flockRetryEINTR(fd, unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return errWouldBlock
		}

		return fmt.Errorf("flock: %w", err)
	}

	var openStat, pathStat unix.Stat_t

	err = unix.Fstat(fd, &openStat)
	if err != nil {
		_ = flockRetryEINTR(fd, unix.LOCK_UN)

		return fmt.Errorf("fstat lock file: %w", err)
	}

	// Someone deleted and recreated the lock file while we opened it.
	err = unix.Stat(lockPath, &pathStat)
	if err != nil || pathStat.Dev != openStat.Dev || pathStat.Ino != openStat.Ino {
		_ = flockRetryEINTR(fd, unix.LOCK_UN)

		return errInodeMismatch
	}

	return nil
}

// flockRetryEINTR calls flock, retrying when a signal interrupts it.
func flockRetryEINTR(fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for _i := 0; _i < maxEINTRRetries; _i++ {
		err = unix.Flock(fd, how)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
