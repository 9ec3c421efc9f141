package project

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/calvinalkan/pm/internal/fs"
)

// Catalog runs user actions against one data directory.
//
// Every mutation is one transaction: take the directory lock, load, apply
// the change in memory, save, then fire the refresh signal. Saving and
// signalling only happen when the change reports that something differs.
type Catalog struct {
	store    *Store
	icons    *IconStore
	notifier *Notifier
	fs       fs.FS
	log      *zap.Logger
}

// NewCatalog returns a Catalog for dir. Options apply to every component.
func NewCatalog(dir string, opts ...Option) *Catalog {
	o := buildOptions(opts)

	return &Catalog{
		store:    NewStore(dir, opts...),
		icons:    NewIconStore(dir, opts...),
		notifier: NewNotifier(),
		fs:       o.fs,
		log:      o.log,
	}
}

// Dir returns the data directory.
func (c *Catalog) Dir() string {
	return c.store.Dir()
}

// Store returns the underlying document store.
func (c *Catalog) Store() *Store {
	return c.store
}

// Icons returns the icon store sharing the data directory.
func (c *Catalog) Icons() *IconStore {
	return c.icons
}

// Notifier returns the refresh signal fired after successful updates.
func (c *Catalog) Notifier() *Notifier {
	return c.notifier
}

// Subscribe registers fn for the refresh signal.
func (c *Catalog) Subscribe(fn func()) (cancel func()) {
	return c.notifier.Subscribe(fn)
}

// View loads the current document without locking.
func (c *Catalog) View() (Document, error) {
	return c.store.Load()
}

// Update applies fn as one transaction and returns the resulting document.
//
// fn receives the loaded document and reports whether it changed it. On
// error nothing is written and the error is returned as is. The refresh
// signal fires only after a successful save.
func (c *Catalog) Update(fn func(doc *Document) (bool, error)) (Document, error) {
	lock, err := c.fs.Lock(c.store.ProjectsPath())
	if err != nil {
		return Document{}, fmt.Errorf("acquiring lock: %w", err)
	}

	doc, changed, err := c.apply(fn)

	closeErr := lock.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("releasing lock: %w", closeErr)
	}

	if err != nil {
		return Document{}, err
	}

	if changed {
		c.notifier.Fire()
	}

	return doc, nil
}

func (c *Catalog) apply(fn func(doc *Document) (bool, error)) (Document, bool, error) {
	doc, err := c.store.Load()
	if err != nil {
		return Document{}, false, err
	}

	changed, err := fn(&doc)
	if err != nil {
		return Document{}, false, err
	}

	if !changed {
		return doc, false, nil
	}

	err = c.store.Save(doc)
	if err != nil {
		c.log.Error("catalog update failed", zap.Error(err))

		return Document{}, false, err
	}

	return doc, true, nil
}

// Add appends a new project with a fresh id and returns it. A project
// whose path is already catalogued is rejected with [ErrDuplicatePath].
func (c *Catalog) Add(name, path, folder string) (Project, error) {
	id, err := NewID()
	if err != nil {
		return Project{}, err
	}

	p := Project{ID: id, Name: name, Path: path, Folder: folder}

	_, err = c.Update(func(doc *Document) (bool, error) {
		if existing, ok := FindByPath(doc.Projects, path); ok {
			return false, fmt.Errorf("%w: %s (%s)", ErrDuplicatePath, path, existing.ID)
		}

		doc.Projects = AddProject(doc.Projects, p)

		return true, nil
	})
	if err != nil {
		return Project{}, err
	}

	return p, nil
}

// Rename renames project id.
func (c *Catalog) Rename(id, name string) (bool, error) {
	return c.updateProjects(func(projects []Project) ([]Project, bool) {
		return RenameProject(projects, id, name)
	})
}

// Remove deletes project id. Its icon file is kept.
func (c *Catalog) Remove(id string) (bool, error) {
	return c.updateProjects(func(projects []Project) ([]Project, bool) {
		return DeleteProject(projects, id)
	})
}

// Move places project id at target, see [Reorder].
func (c *Catalog) Move(id string, target Target) (bool, error) {
	return c.updateProjects(func(projects []Project) ([]Project, bool) {
		return Reorder(projects, id, target)
	})
}

// MoveToFolder moves project id into folder, or to root when folder is
// empty.
func (c *Catalog) MoveToFolder(id, folder string) (bool, error) {
	return c.updateProjects(func(projects []Project) ([]Project, bool) {
		return MoveToFolder(projects, id, folder)
	})
}

// SetIcon copies src into the icon directory and attaches it to project id.
// Returns the stored logical name, or "" when the project does not exist.
func (c *Catalog) SetIcon(id, src string) (string, error) {
	return c.attachIcon(src, func(doc *Document, stored string) bool {
		var ok bool

		doc.Projects, ok = SetProjectIcon(doc.Projects, id, stored)

		return ok
	}, func(doc Document) bool {
		_, ok := FindProject(doc.Projects, id)

		return ok
	})
}

// ClearIcon detaches the icon of project id. The file stays on disk.
func (c *Catalog) ClearIcon(id string) (bool, error) {
	return c.updateProjects(func(projects []Project) ([]Project, bool) {
		return ClearProjectIcon(projects, id)
	})
}

// RenameFolder renames folder from to to, see [RenameFolder].
func (c *Catalog) RenameFolder(from, to string) (bool, error) {
	return c.updateDocument(func(doc Document) (Document, bool) {
		return RenameFolder(doc, from, to)
	})
}

// DeleteFolder moves the projects of folder to root and drops its metadata.
func (c *Catalog) DeleteFolder(folder string) (bool, error) {
	return c.updateDocument(func(doc Document) (Document, bool) {
		return DeleteFolder(doc, folder)
	})
}

// SetFolderIcon copies src into the icon directory and attaches it to
// folder. Returns "" when no project references folder.
func (c *Catalog) SetFolderIcon(folder, src string) (string, error) {
	return c.attachIcon(src, func(doc *Document, stored string) bool {
		var ok bool

		*doc, ok = SetFolderIcon(*doc, folder, stored)

		return ok
	}, func(doc Document) bool {
		return FolderExists(doc.Projects, folder)
	})
}

// attachIcon stores src and records it with attach, all under the lock.
// exists reports whether the icon owner is present; when it is not, no
// file is copied. A copied file is removed again if the save fails, so a
// failed action leaves no unreferenced icon behind.
func (c *Catalog) attachIcon(src string, attach func(doc *Document, stored string) bool, exists func(doc Document) bool) (string, error) {
	var name string

	_, err := c.Update(func(doc *Document) (bool, error) {
		if !exists(*doc) {
			return false, nil
		}

		stored, err := c.icons.StoreIcon(src)
		if err != nil {
			return false, err
		}

		name = stored

		return attach(doc, stored), nil
	})
	if err != nil {
		if name != "" && errors.Is(err, ErrSave) {
			c.rollbackIcon(name)
		}

		return "", err
	}

	return name, nil
}

func (c *Catalog) rollbackIcon(name string) {
	_, err := c.icons.DeleteIcon(name)
	if err != nil {
		c.log.Error("icon rollback failed", zap.String("name", name), zap.Error(err))
	}
}

// PruneIcon deletes the icon file name unless a project or folder still
// references it. Returns whether a file was deleted.
func (c *Catalog) PruneIcon(name string) (bool, error) {
	var deleted bool

	_, err := c.Update(func(doc *Document) (bool, error) {
		if iconInUse(*doc, name) {
			return false, nil
		}

		var err error

		deleted, err = c.icons.DeleteIcon(name)

		return false, err
	})

	return deleted, err
}

func iconInUse(doc Document, name string) bool {
	for _, p := range doc.Projects {
		if p.Icon == name {
			return true
		}
	}

	for _, f := range doc.Folders {
		if f.Icon == name {
			return true
		}
	}

	return false
}

// ClearFolderIcon detaches the icon of folder.
func (c *Catalog) ClearFolderIcon(folder string) (bool, error) {
	return c.updateDocument(func(doc Document) (Document, bool) {
		return ClearFolderIcon(doc, folder)
	})
}

func (c *Catalog) updateProjects(fn func([]Project) ([]Project, bool)) (bool, error) {
	return c.updateDocument(func(doc Document) (Document, bool) {
		projects, changed := fn(doc.Projects)
		doc.Projects = projects

		return doc, changed
	})
}

func (c *Catalog) updateDocument(fn func(Document) (Document, bool)) (bool, error) {
	var changed bool

	_, err := c.Update(func(doc *Document) (bool, error) {
		var next Document

		next, changed = fn(*doc)
		if changed {
			warnings := doc.Warnings
			*doc = next
			doc.Warnings = warnings
		}

		return changed, nil
	})
	if err != nil {
		return false, err
	}

	return changed, nil
}

// IsLockTimeout reports whether err came from waiting on another process
// that holds the catalog lock.
func IsLockTimeout(err error) bool {
	return errors.Is(err, fs.ErrLockTimeout)
}
