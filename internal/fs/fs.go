// Package fs provides the filesystem seam used by the catalog.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the catalog needs
//   - [Real]: production implementation using [os]
//   - [Faulty]: testing implementation that fails selected operations
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("project-manager.json")
//	if err != nil {
//	    return err
//	}
package fs

import (
	"io"
	"os"
)

// Locker represents a held file lock.
// Call [Locker.Close] to release the lock.
//
// Example:
//
//	lock, err := fsys.Lock("project-manager.json")
//	if err != nil {
//	    return err // lock contention or timeout
//	}
//	defer lock.Close()
type Locker interface {
	io.Closer
}

// FS defines the filesystem operations used for reading, writing and
// locking catalog files.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
type FS interface {
	// --- Reading ---

	// Open opens a file for reading. See [os.Open].
	Open(path string) (*os.File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// --- Writing ---

	// WriteFileAtomic writes the content of r to path atomically.
	// Uses a temp file + rename so readers never see a partial file.
	WriteFileAtomic(path string, r io.Reader) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// --- Metadata ---

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// --- Mutations ---

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error

	// --- Locking ---

	// Lock acquires an exclusive advisory lock for path.
	// Blocks until the lock is acquired or returns [ErrLockTimeout].
	Lock(path string) (Locker, error)
}
