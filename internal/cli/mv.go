package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

var errConflictingTargets = errors.New("--on-project and --on-folder cannot be used together")

// MvCmd returns the mv command.
func MvCmd(catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("mv", flag.ContinueOnError),
		Usage: "mv <project> [folder]",
		Short: "Move a project into a folder",
		Long: `Move a project into a folder, creating the folder if no project uses it yet.
Without a folder the project moves to the top level.

The project is placed after the last project already in that folder.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			folder := ""
			if len(args) > 1 {
				folder = strings.TrimSpace(strings.Join(args[1:], " "))
			}

			doc, err := viewCatalog(io, catalog)
			if err != nil {
				return err
			}

			p, err := resolveProject(doc.Projects, args[0])
			if err != nil {
				return err
			}

			changed, err := catalog.MoveToFolder(p.ID, folder)
			if err != nil {
				return err
			}

			reportMove(io, p.ID, project.FolderTarget(folder), changed)

			return nil
		},
	}
}

// DropCmd returns the drop command.
func DropCmd(catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("drop", flag.ContinueOnError)
	flags.String("on-project", "", "Drop onto this project; join its folder")
	flags.String("on-folder", "", "Drop onto this existing folder")

	return &Command{
		Flags: flags,
		Usage: "drop <project> [flags]",
		Short: "Drop a project onto a project or folder",
		Long: `Drop a project like a drag and drop in a tree view.

Dropping onto a project moves into that project's folder, dropping onto
a folder moves into the folder, and dropping with no target moves to the
top level. The project lands after the last project of its new group.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execDrop(io, catalog, flags, args[0])
		},
	}
}

func execDrop(io *IO, catalog *project.Catalog, flags *flag.FlagSet, ref string) error {
	onProject, _ := flags.GetString("on-project")
	onFolder, _ := flags.GetString("on-folder")

	if flags.Changed("on-project") && flags.Changed("on-folder") {
		return errConflictingTargets
	}

	doc, err := viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	switch {
	case flags.Changed("on-project"):
		target, err := resolveProject(doc.Projects, onProject)
		if err != nil {
			return err
		}

		return execMove(io, catalog, doc, ref, project.ProjectTarget(target.ID))

	case flags.Changed("on-folder"):
		err = requireFolder(doc, onFolder)
		if err != nil {
			return err
		}

		return execMove(io, catalog, doc, ref, project.FolderTarget(onFolder))

	default:
		return execMove(io, catalog, doc, ref, project.RootTarget())
	}
}

func execMove(io *IO, catalog *project.Catalog, doc project.Document, ref string, target project.Target) error {
	p, err := resolveProject(doc.Projects, ref)
	if err != nil {
		return err
	}

	changed, err := catalog.Move(p.ID, target)
	if err != nil {
		return err
	}

	reportMove(io, p.ID, target, changed)

	return nil
}

func reportMove(io *IO, id string, target project.Target, changed bool) {
	if !changed {
		io.Println("unchanged", id)

		return
	}

	io.Println("moved", id, "to", target.String())
}
