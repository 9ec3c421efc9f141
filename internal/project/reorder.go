package project

import "slices"

type targetKind int

const (
	targetRoot targetKind = iota
	targetFolder
	targetProject
)

// Target is where a project is dropped: the root background, a folder, or
// another project.
type Target struct {
	kind targetKind
	name string // folder name or project id
}

// RootTarget is a drop on empty space, which moves a project to root.
func RootTarget() Target {
	return Target{kind: targetRoot}
}

// FolderTarget is a drop onto a folder. An empty name is the root.
func FolderTarget(name string) Target {
	if name == "" {
		return RootTarget()
	}

	return Target{kind: targetFolder, name: name}
}

// ProjectTarget is a drop onto another project; the moved project joins
// that project's group.
func ProjectTarget(id string) Target {
	return Target{kind: targetProject, name: id}
}

func (t Target) String() string {
	switch t.kind {
	case targetFolder:
		return "folder " + t.name
	case targetProject:
		return "project " + t.name
	default:
		return "root"
	}
}

// Reorder moves the project movedID to target and returns the new list.
//
// The moved project takes the target's effective group (folder name, the
// target project's folder, or root) and is placed right after the last
// remaining project of that group. If the group has no other member it is
// appended at the end of the list.
//
// Unknown ids and dropping a project onto itself are no-ops: the input is
// returned with changed == false. projects is never modified.
func Reorder(projects []Project, movedID string, target Target) ([]Project, bool) {
	from := indexOf(projects, movedID)
	if from < 0 {
		return projects, false
	}

	var group string

	switch target.kind {
	case targetFolder:
		group = target.name
	case targetProject:
		if target.name == movedID {
			return projects, false
		}

		to := indexOf(projects, target.name)
		if to < 0 {
			return projects, false
		}

		group = projects[to].Folder
	case targetRoot:
		group = ""
	}

	moved := projects[from]
	moved.Folder = group

	out := make([]Project, 0, len(projects))
	out = append(out, projects[:from]...)
	out = append(out, projects[from+1:]...)

	at := len(out)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Folder == group {
			at = i + 1

			break
		}
	}

	out = slices.Insert(out, at, moved)

	if slices.Equal(out, projects) {
		return projects, false
	}

	return out, true
}

// MoveToFolder moves project id into folder, or to root when folder is
// empty. Placement follows Reorder.
func MoveToFolder(projects []Project, id, folder string) ([]Project, bool) {
	return Reorder(projects, id, FolderTarget(folder))
}

func indexOf(projects []Project, id string) int {
	return slices.IndexFunc(projects, func(p Project) bool {
		return p.ID == id
	})
}
