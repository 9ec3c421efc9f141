package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/calvinalkan/pm/internal/fs"
)

// maxIconSuffix bounds the search for a free icon name.
const maxIconSuffix = 10000

// allowedIconExts lists accepted icon formats, matched on the lowercased
// file extension.
var allowedIconExts = map[string]bool{
	".svg":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".ico":  true,
	".bmp":  true,
}

// IsAllowedIcon reports whether name has an accepted icon extension.
func IsAllowedIcon(name string) bool {
	return allowedIconExts[strings.ToLower(filepath.Ext(name))]
}

// IconStore manages the flat icon directory.
//
// Icons are referenced by their file name (the logical name). Name
// collisions are resolved by suffixing, which is not safe against
// concurrent callers; Catalog serializes icon writes under its lock.
type IconStore struct {
	dir string
	fs  fs.FS
	log *zap.Logger
}

// NewIconStore returns an IconStore for dir.
func NewIconStore(dir string, opts ...Option) *IconStore {
	o := buildOptions(opts)

	return &IconStore{
		dir: filepath.Clean(dir),
		fs:  o.fs,
		log: o.log,
	}
}

// Dir returns the managed icon directory.
func (s *IconStore) Dir() string {
	return s.dir
}

// StoreIcon copies src into the icon directory and returns its logical name.
//
// If a file with the same name exists, a numeric suffix is added before the
// extension: icon.svg, icon_1.svg, icon_2.svg, ...
func (s *IconStore) StoreIcon(src string) (string, error) {
	base := filepath.Base(src)
	if !IsAllowedIcon(base) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedIcon, base)
	}

	file, err := s.fs.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrIconNotFound, src)
		}

		return "", fmt.Errorf("%w: %w", ErrIconCopy, err)
	}

	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIconCopy, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrIconCopy, src)
	}

	err = s.fs.MkdirAll(s.dir, dataDirPerms)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrIconCopy, s.dir, err)
	}

	name, err := s.freeName(base)
	if err != nil {
		return "", err
	}

	err = s.fs.WriteFileAtomic(filepath.Join(s.dir, name), file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIconCopy, err)
	}

	s.log.Debug("icon stored",
		zap.String("src", src),
		zap.String("name", name),
	)

	return name, nil
}

// freeName returns base or the first suffixed variant not present on disk.
func (s *IconStore) freeName(base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxIconSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = stem + "_" + strconv.Itoa(i) + ext
		}

		exists, err := s.fs.Exists(filepath.Join(s.dir, candidate))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrIconCopy, err)
		}

		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no free name for %s", ErrIconCopy, base)
}

// ResolveIconPath returns the absolute path for a logical icon name.
//
// Returns false when the file no longer exists or name is not a valid
// logical icon name, so callers can fall back to a default icon.
func (s *IconStore) ResolveIconPath(name string) (string, bool) {
	if !validIconName(name) {
		return "", false
	}

	path := filepath.Join(s.dir, name)

	info, err := s.fs.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	return path, true
}

// DeleteIcon removes the icon file if present. Returns whether a file was
// removed. A missing file or an invalid name is not an error.
func (s *IconStore) DeleteIcon(name string) (bool, error) {
	if !validIconName(name) {
		return false, nil
	}

	err := s.fs.Remove(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("delete icon %s: %w", name, err)
	}

	s.log.Debug("icon deleted", zap.String("name", name))

	return true, nil
}

// validIconName accepts plain file names with an allowed extension only.
// This keeps lookups inside the icon directory and away from the catalog
// documents that share it.
func validIconName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return false
	}

	return IsAllowedIcon(name)
}
