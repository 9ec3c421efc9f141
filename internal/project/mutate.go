package project

import (
	"slices"
	"strings"
)

// The functions below never modify their input slices. Each returns the
// resulting list and whether anything changed. A missing project or folder
// is a no-op.

// FindProject returns the project with id.
func FindProject(projects []Project, id string) (Project, bool) {
	i := indexOf(projects, id)
	if i < 0 {
		return Project{}, false
	}

	return projects[i], true
}

// FindByPath returns the first project catalogued at path.
func FindByPath(projects []Project, path string) (Project, bool) {
	i := slices.IndexFunc(projects, func(p Project) bool {
		return p.Path == path
	})
	if i < 0 {
		return Project{}, false
	}

	return projects[i], true
}

// AddProject appends p. New projects always go to the end of the list,
// regardless of folder.
func AddProject(projects []Project, p Project) []Project {
	out := make([]Project, 0, len(projects)+1)
	out = append(out, projects...)

	return append(out, p)
}

// RenameProject sets the name of project id. The name is trimmed; an empty
// or unchanged name is a no-op.
func RenameProject(projects []Project, id, name string) ([]Project, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return projects, false
	}

	return updateProject(projects, id, func(p *Project) {
		p.Name = name
	})
}

// DeleteProject removes project id. Its icon file is left alone.
func DeleteProject(projects []Project, id string) ([]Project, bool) {
	i := indexOf(projects, id)
	if i < 0 {
		return projects, false
	}

	out := make([]Project, 0, len(projects)-1)
	out = append(out, projects[:i]...)

	return append(out, projects[i+1:]...), true
}

// SetProjectIcon sets the logical icon name of project id.
func SetProjectIcon(projects []Project, id, icon string) ([]Project, bool) {
	return updateProject(projects, id, func(p *Project) {
		p.Icon = icon
	})
}

// ClearProjectIcon removes the icon of project id.
func ClearProjectIcon(projects []Project, id string) ([]Project, bool) {
	return SetProjectIcon(projects, id, "")
}

func updateProject(projects []Project, id string, fn func(*Project)) ([]Project, bool) {
	i := indexOf(projects, id)
	if i < 0 {
		return projects, false
	}

	p := projects[i]
	fn(&p)

	if p == projects[i] {
		return projects, false
	}

	out := slices.Clone(projects)
	out[i] = p

	return out, true
}

// RenameFolder renames folder from to to on every project that references
// it and moves its metadata along. Project order is kept.
//
// Renaming onto an existing folder merges the two groups. If both carry
// metadata, the target's entry wins.
func RenameFolder(doc Document, from, to string) (Document, bool) {
	to = strings.TrimSpace(to)
	if from == "" || to == "" || from == to {
		return doc, false
	}

	out := doc.Clone()
	changed := false

	for i := range out.Projects {
		if out.Projects[i].Folder == from {
			out.Projects[i].Folder = to
			changed = true
		}
	}

	src := folderIndex(out.Folders, from)
	if src >= 0 {
		if folderIndex(out.Folders, to) >= 0 {
			out.Folders = slices.Delete(out.Folders, src, src+1)
		} else {
			out.Folders[src].Name = to
		}

		changed = true
	}

	if !changed {
		return doc, false
	}

	return out, true
}

// DeleteFolder clears folder on every project that references it, leaving
// them at root in their current order, and drops the folder metadata.
func DeleteFolder(doc Document, folder string) (Document, bool) {
	if folder == "" {
		return doc, false
	}

	out := doc.Clone()
	changed := false

	for i := range out.Projects {
		if out.Projects[i].Folder == folder {
			out.Projects[i].Folder = ""
			changed = true
		}
	}

	if i := folderIndex(out.Folders, folder); i >= 0 {
		out.Folders = slices.Delete(out.Folders, i, i+1)
		changed = true
	}

	if !changed {
		return doc, false
	}

	return out, true
}

// SetFolderIcon sets the icon of folder, creating its metadata entry when
// needed. Only folders referenced by a project can get an icon.
func SetFolderIcon(doc Document, folder, icon string) (Document, bool) {
	if icon == "" {
		return ClearFolderIcon(doc, folder)
	}

	if !FolderExists(doc.Projects, folder) {
		return doc, false
	}

	i := folderIndex(doc.Folders, folder)
	if i >= 0 && doc.Folders[i].Icon == icon {
		return doc, false
	}

	out := doc.Clone()
	if i >= 0 {
		out.Folders[i].Icon = icon
	} else {
		out.Folders = append(out.Folders, Folder{Name: folder, Icon: icon})
	}

	return out, true
}

// ClearFolderIcon removes the icon of folder. The metadata entry goes away
// with it since the icon is its only payload.
func ClearFolderIcon(doc Document, folder string) (Document, bool) {
	i := folderIndex(doc.Folders, folder)
	if i < 0 {
		return doc, false
	}

	out := doc.Clone()
	out.Folders = slices.Delete(out.Folders, i, i+1)

	return out, true
}

// FolderIcon returns the icon attached to folder, if any.
func FolderIcon(folders []Folder, folder string) string {
	if i := folderIndex(folders, folder); i >= 0 {
		return folders[i].Icon
	}

	return ""
}

func folderIndex(folders []Folder, name string) int {
	return slices.IndexFunc(folders, func(f Folder) bool {
		return f.Name == name
	})
}
