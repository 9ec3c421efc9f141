package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// RmCmd returns the rm command.
func RmCmd(catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("rm", flag.ContinueOnError)
	flags.BoolP("yes", "y", false, "Do not ask for confirmation")
	flags.Bool("delete-icon", false, "Also delete the icon file unless another project or folder uses it")

	return &Command{
		Flags: flags,
		Usage: "rm <project> [flags]",
		Short: "Remove a project from the catalog",
		Long:  "Remove a project from the catalog. The directory is never touched; the icon file is kept unless --delete-icon is given.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			yes, _ := flags.GetBool("yes")
			deleteIcon, _ := flags.GetBool("delete-icon")

			return execRm(io, catalog, args[0], yes, deleteIcon)
		},
	}
}

func execRm(io *IO, catalog *project.Catalog, ref string, yes, deleteIcon bool) error {
	doc, err := viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	p, err := resolveProject(doc.Projects, ref)
	if err != nil {
		return err
	}

	if !yes {
		err = confirm(io, fmt.Sprintf("Remove %q (%s)?", p.Name, p.Path))
		if err != nil {
			return err
		}
	}

	_, err = catalog.Remove(p.ID)
	if err != nil {
		return err
	}

	io.Println("removed", p.ID)

	if deleteIcon {
		return pruneIcon(io, catalog, p.Icon)
	}

	return nil
}
