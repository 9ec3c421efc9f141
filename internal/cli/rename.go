package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// RenameCmd returns the rename command.
func RenameCmd(catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rename", flag.ContinueOnError),
		Usage: "rename <project> <name>",
		Short: "Rename a project",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if strings.TrimSpace(strings.Join(args[1:], " ")) == "" {
				return project.ErrNameRequired
			}

			return execRename(io, catalog, args[0], strings.Join(args[1:], " "))
		},
	}
}

func execRename(io *IO, catalog *project.Catalog, ref, name string) error {
	doc, err := viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	p, err := resolveProject(doc.Projects, ref)
	if err != nil {
		return err
	}

	changed, err := catalog.Rename(p.ID, name)
	if err != nil {
		return err
	}

	if !changed {
		io.Println("unchanged", p.ID)

		return nil
	}

	io.Println("renamed", p.ID)

	return nil
}
