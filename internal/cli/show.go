package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// ShowCmd returns the show command.
func ShowCmd(_ *project.Config, catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <project>",
		Short: "Show project details",
		Long:  "Show all fields of a project.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execShow(io, catalog, args[0])
		},
	}
}

func execShow(io *IO, catalog *project.Catalog, ref string) error {
	doc, err := viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	p, err := resolveProject(doc.Projects, ref)
	if err != nil {
		return err
	}

	io.Println("id=" + p.ID)
	io.Println("name=" + p.Name)
	io.Println("path=" + p.Path)

	if p.Folder != "" {
		io.Println("folder=" + p.Folder)
	}

	if p.Icon != "" {
		io.Println("icon=" + p.Icon)

		if path, ok := catalog.Icons().ResolveIconPath(p.Icon); ok {
			io.Println("icon_path=" + path)
		} else {
			io.Warn("icon "+p.Icon+" of "+p.ID+" is missing", "set a new icon with `pm icon`")
		}
	}

	return nil
}
