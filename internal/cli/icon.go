package cli

import (
	"context"
	"errors"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

var (
	errIconFileRequired = errors.New("icon file is required (or --clear)")
	errIconAndClear     = errors.New("icon file and --clear cannot be used together")
	errDeleteNeedsClear = errors.New("--delete-icon requires --clear")
)

// IconCmd returns the icon command.
func IconCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("icon", flag.ContinueOnError)
	flags.Bool("clear", false, "Remove the icon reference")
	flags.Bool("delete-icon", false, "With --clear, also delete the icon file unless still in use")

	return &Command{
		Flags: flags,
		Usage: "icon <project> [file] [--clear]",
		Short: "Set or clear a project icon",
		Long: `Copy an image into the catalog directory and use it as the project icon.
Accepted formats: svg, png, jpg, jpeg, gif, webp, ico, bmp.
If a file with the same name is already stored, a numeric suffix is added.

--clear only removes the reference. Add --delete-icon to delete the file
as well; it is kept while another project or folder uses it.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			clearIcon, _ := flags.GetBool("clear")
			deleteIcon, _ := flags.GetBool("delete-icon")

			src, err := iconSource(cfg, args[1:], clearIcon, deleteIcon)
			if err != nil {
				return err
			}

			doc, err := viewCatalog(io, catalog)
			if err != nil {
				return err
			}

			p, err := resolveProject(doc.Projects, args[0])
			if err != nil {
				return err
			}

			if clearIcon {
				_, err = catalog.ClearIcon(p.ID)
				if err != nil {
					return err
				}

				io.Println("cleared icon of", p.ID)

				if deleteIcon {
					return pruneIcon(io, catalog, p.Icon)
				}

				return nil
			}

			name, err := catalog.SetIcon(p.ID, src)
			if err != nil {
				return err
			}

			io.Println(name)

			return nil
		},
	}
}

// iconSource validates the icon arguments and resolves the source path
// against the working directory.
func iconSource(cfg *project.Config, args []string, clearIcon, deleteIcon bool) (string, error) {
	if deleteIcon && !clearIcon {
		return "", errDeleteNeedsClear
	}

	if clearIcon {
		if len(args) > 0 {
			return "", errIconAndClear
		}

		return "", nil
	}

	if len(args) == 0 {
		return "", errIconFileRequired
	}

	src := args[0]
	if !filepath.IsAbs(src) {
		src = filepath.Join(cfg.EffectiveCwd, src)
	}

	return src, nil
}

// pruneIcon deletes the icon file name once nothing references it.
func pruneIcon(io *IO, catalog *project.Catalog, name string) error {
	if name == "" {
		return nil
	}

	deleted, err := catalog.PruneIcon(name)
	if err != nil {
		return err
	}

	if deleted {
		io.Println("deleted icon", name)

		return nil
	}

	if _, ok := catalog.Icons().ResolveIconPath(name); ok {
		io.Println("kept icon", name, "(still in use)")
	}

	return nil
}
