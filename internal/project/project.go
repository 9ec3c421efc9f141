// Package project implements the project catalog: the persisted ordered
// list of projects, folder metadata, the icon directory, and the rules
// that derive the folder tree and place projects after a move.
package project

// Project is a single catalogued project folder.
//
// Field order is the key order of the persisted JSON.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	Icon   string `json:"icon,omitempty"`   // logical icon name, see IconStore
	Folder string `json:"folder,omitempty"` // owning folder, empty = root
}

// InRoot reports whether p belongs to no folder.
func (p Project) InRoot() bool {
	return p.Folder == ""
}

// Folder is metadata attached to a folder name.
//
// Folders exist implicitly while a project references them. A Folder entry
// only carries extra data (the icon) and outlives its projects until it is
// deleted explicitly.
type Folder struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Document is the full persisted catalog state.
type Document struct {
	// Projects is the authoritative ordered list. Order encodes position
	// within each folder and among root projects.
	Projects []Project

	// Folders holds folder metadata, stored in its own file.
	Folders []Folder

	// Warnings collects load diagnostics (not persisted).
	Warnings []string
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{
		Projects: append([]Project(nil), d.Projects...),
		Folders:  append([]Folder(nil), d.Folders...),
	}

	if len(d.Warnings) > 0 {
		out.Warnings = append([]string(nil), d.Warnings...)
	}

	return out
}
