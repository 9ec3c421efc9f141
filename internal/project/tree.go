package project

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NodeKind discriminates the variants of Node.
type NodeKind int

const (
	// NodeProject is a project at root level.
	NodeProject NodeKind = iota + 1
	// NodeFolder is a folder with its projects as children.
	NodeFolder
)

func (k NodeKind) String() string {
	switch k {
	case NodeProject:
		return "project"
	case NodeFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Node is one top-level entry of the derived tree.
//
// For NodeFolder, Folder and Children are set. For NodeProject, Project is
// set. Consumers switch on Kind.
type Node struct {
	Kind     NodeKind
	Folder   Folder
	Children []Project
	Project  Project
}

// TreeOptions control BuildTree.
type TreeOptions struct {
	// Folders supplies metadata (icons) for folders. Entries for folders no
	// project references are ignored.
	Folders []Folder

	// Language selects the collation used for name ordering. The zero
	// value uses the root collation.
	Language language.Tag
}

// BuildTree groups projects into a two-level view: folders first, then
// root projects. Folders and the projects inside each group are ordered by
// name using locale-aware collation, ties broken by id.
//
// BuildTree is pure. Repeated calls on the same input return equal results.
func BuildTree(projects []Project, opts TreeOptions) []Node {
	// Collators keep internal buffers and are not safe to share.
	coll := collate.New(opts.Language)
	byName := func(a, b Project) int {
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	}

	meta := make(map[string]Folder, len(opts.Folders))
	for _, f := range opts.Folders {
		if _, ok := meta[f.Name]; !ok {
			meta[f.Name] = f
		}
	}

	buckets := make(map[string][]Project)

	var root []Project

	for _, p := range projects {
		if p.InRoot() {
			root = append(root, p)

			continue
		}

		buckets[p.Folder] = append(buckets[p.Folder], p)
	}

	folders := make([]Node, 0, len(buckets))

	for name, children := range buckets {
		folder, ok := meta[name]
		if !ok {
			folder = Folder{Name: name}
		}

		slices.SortFunc(children, byName)

		folders = append(folders, Node{
			Kind:     NodeFolder,
			Folder:   folder,
			Children: children,
		})
	}

	slices.SortFunc(folders, func(a, b Node) int {
		if c := coll.CompareString(a.Folder.Name, b.Folder.Name); c != 0 {
			return c
		}

		return cmp.Compare(a.Folder.Name, b.Folder.Name)
	})

	slices.SortFunc(root, byName)

	nodes := folders
	for _, p := range root {
		nodes = append(nodes, Node{Kind: NodeProject, Project: p})
	}

	return nodes
}

// FolderNames returns the distinct folder names referenced by projects, in
// order of first appearance.
func FolderNames(projects []Project) []string {
	seen := make(map[string]bool)

	var names []string

	for _, p := range projects {
		if p.InRoot() || seen[p.Folder] {
			continue
		}

		seen[p.Folder] = true
		names = append(names, p.Folder)
	}

	return names
}

// FolderExists reports whether any project references folder.
func FolderExists(projects []Project, folder string) bool {
	if folder == "" {
		return false
	}

	return slices.ContainsFunc(projects, func(p Project) bool {
		return p.Folder == folder
	})
}
