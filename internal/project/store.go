package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"github.com/calvinalkan/pm/internal/fs"
)

const dataDirPerms = 0o755

// Store reads and writes the catalog files inside one data directory.
//
// Projects live in [ProjectsFileName], folder metadata in [FoldersFileName].
// Both are JSON arrays written with two-space indentation so they stay
// editable by hand.
type Store struct {
	dir string
	fs  fs.FS
	log *zap.Logger
}

// NewStore returns a Store for dir.
func NewStore(dir string, opts ...Option) *Store {
	o := buildOptions(opts)

	return &Store{
		dir: filepath.Clean(dir),
		fs:  o.fs,
		log: o.log,
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// ProjectsPath returns the path of the projects document.
func (s *Store) ProjectsPath() string {
	return filepath.Join(s.dir, ProjectsFileName)
}

// FoldersPath returns the path of the folder metadata document.
func (s *Store) FoldersPath() string {
	return filepath.Join(s.dir, FoldersFileName)
}

// Load reads both documents.
//
// A missing file is an empty list. A file that is not valid JSON(C) or does
// not match the expected shape is also an empty list: the problem is
// recorded in Document.Warnings and nothing from that file is used.
// Only read errors other than "not exist" are returned.
func (s *Store) Load() (Document, error) {
	var doc Document

	projectsWarning, err := s.loadList(s.ProjectsPath(), projectsSchema, &doc.Projects)
	if err != nil {
		return Document{}, err
	}

	if projectsWarning != "" {
		doc.Projects = nil
	} else if dup, ok := duplicateID(doc.Projects); ok {
		doc.Projects = nil
		projectsWarning = s.warn(s.ProjectsPath(), fmt.Errorf("duplicate id %q", dup))
	}

	foldersWarning, err := s.loadList(s.FoldersPath(), foldersSchema, &doc.Folders)
	if err != nil {
		return Document{}, err
	}

	if foldersWarning != "" {
		doc.Folders = nil
	}

	for _, w := range []string{projectsWarning, foldersWarning} {
		if w != "" {
			doc.Warnings = append(doc.Warnings, w)
		}
	}

	if doc.Projects == nil {
		doc.Projects = []Project{}
	}

	s.log.Debug("catalog loaded",
		zap.String("dir", s.dir),
		zap.Int("projects", len(doc.Projects)),
		zap.Int("folders", len(doc.Folders)),
		zap.Int("warnings", len(doc.Warnings)),
	)

	return doc, nil
}

// loadList decodes the array at path into out. Returns a warning message
// when the file was rejected.
func (s *Store) loadList(path string, schema func() (*jsonschema.Schema, error), out any) (string, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}

	// Hand edits may leave comments or trailing commas behind.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return s.warn(path, fmt.Errorf("invalid JSON: %w", err)), nil
	}

	err = validateShape(schema, standardized)
	if err != nil {
		return s.warn(path, err), nil
	}

	err = json.Unmarshal(standardized, out)
	if err != nil {
		return s.warn(path, fmt.Errorf("decode: %w", err)), nil
	}

	return "", nil
}

func (s *Store) warn(path string, cause error) string {
	msg := fmt.Sprintf("%s %s: %v (ignoring its content)", ErrMalformedDocument, filepath.Base(path), cause)

	s.log.Warn("catalog document rejected",
		zap.String("path", path),
		zap.Error(cause),
	)

	return msg
}

// Save writes both documents atomically.
//
// The projects document is always written. The folder metadata document is
// written when there is metadata or when the file already exists, so a
// catalog without folder icons never grows a second file.
func (s *Store) Save(doc Document) error {
	err := s.fs.MkdirAll(s.dir, dataDirPerms)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrSave, s.dir, err)
	}

	projects := doc.Projects
	if projects == nil {
		projects = []Project{}
	}

	err = s.writeList(s.ProjectsPath(), projects)
	if err != nil {
		return err
	}

	writeFolders := len(doc.Folders) > 0
	if !writeFolders {
		exists, existsErr := s.fs.Exists(s.FoldersPath())
		if existsErr != nil {
			return fmt.Errorf("%w: %w", ErrSave, existsErr)
		}

		writeFolders = exists
	}

	if writeFolders {
		folders := doc.Folders
		if folders == nil {
			folders = []Folder{}
		}

		err = s.writeList(s.FoldersPath(), folders)
		if err != nil {
			return err
		}
	}

	s.log.Debug("catalog saved",
		zap.String("dir", s.dir),
		zap.Int("projects", len(doc.Projects)),
		zap.Int("folders", len(doc.Folders)),
	)

	return nil
}

// EnsureFile creates path as an empty list when it does not exist yet.
// path must be [Store.ProjectsPath] or [Store.FoldersPath]. An existing
// file is never touched, whatever its content.
func (s *Store) EnsureFile(path string) error {
	if path != s.ProjectsPath() && path != s.FoldersPath() {
		return fmt.Errorf("%w: %s is not a catalog document", ErrSave, path)
	}

	exists, err := s.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	if exists {
		return nil
	}

	err = s.fs.MkdirAll(s.dir, dataDirPerms)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrSave, s.dir, err)
	}

	return s.writeList(path, []struct{}{})
}

func (s *Store) writeList(path string, list any) error {
	data, err := encodeList(list)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrSave, filepath.Base(path), err)
	}

	err = s.fs.WriteFileAtomic(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrSave, path, err)
	}

	return nil
}

// encodeList renders list as indented JSON with a trailing newline.
// HTML escaping is off so paths containing & < > stay readable.
func encodeList(list any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(list)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func duplicateID(projects []Project) (string, bool) {
	seen := make(map[string]bool, len(projects))

	for _, p := range projects {
		if seen[p.ID] {
			return p.ID, true
		}

		seen[p.ID] = true
	}

	return "", false
}
