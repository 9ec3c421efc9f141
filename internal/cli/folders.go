package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// FoldersCmd returns the folders command.
func FoldersCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("folders", flag.ContinueOnError),
		Usage: "folders",
		Short: "List folders",
		Long:  "List folder names in the order they first appear, with project counts.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			doc, err := viewCatalog(io, catalog)
			if err != nil {
				return err
			}

			for _, name := range project.FolderNames(doc.Projects) {
				folder := project.Folder{Name: name, Icon: project.FolderIcon(doc.Folders, name)}
				io.Println(formatFolderLine(cfg, catalog.Icons(), folder, len(projectsIn(doc.Projects, name))))
			}

			return nil
		},
	}
}

// FolderRenameCmd returns the folder-rename command.
func FolderRenameCmd(catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("folder-rename", flag.ContinueOnError),
		Usage: "folder-rename <folder> <name>",
		Short: "Rename a folder",
		Long:  "Rename a folder on every project in it. Renaming onto an existing folder merges both.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			to := ""
			if len(args) > 1 {
				to = strings.TrimSpace(strings.Join(args[1:], " "))
			}

			if to == "" {
				return project.ErrNameRequired
			}

			doc, err := viewCatalog(io, catalog)
			if err != nil {
				return err
			}

			err = requireFolder(doc, args[0])
			if err != nil {
				return err
			}

			changed, err := catalog.RenameFolder(args[0], to)
			if err != nil {
				return err
			}

			if !changed {
				io.Println("unchanged", args[0])

				return nil
			}

			io.Println("renamed", args[0], "to", to)

			return nil
		},
	}
}

// FolderRmCmd returns the folder-rm command.
func FolderRmCmd(catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("folder-rm", flag.ContinueOnError)
	flags.BoolP("yes", "y", false, "Do not ask for confirmation")

	return &Command{
		Flags: flags,
		Usage: "folder-rm <folder> [-y]",
		Short: "Delete a folder",
		Long:  "Delete a folder. Its projects move to the top level in their current order.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			name := args[0]

			doc, err := viewCatalog(io, catalog)
			if err != nil {
				return err
			}

			// Metadata of a folder without projects can still be removed.
			if !project.FolderExists(doc.Projects, name) && project.FolderIcon(doc.Folders, name) == "" {
				return fmt.Errorf("%w: %s", project.ErrFolderNotFound, name)
			}

			yes, _ := flags.GetBool("yes")
			if !yes {
				count := len(projectsIn(doc.Projects, name))

				err = confirm(io, fmt.Sprintf("Delete folder %q (%s move to the top level)?", name, plural(count, "project")))
				if err != nil {
					return err
				}
			}

			_, err = catalog.DeleteFolder(name)
			if err != nil {
				return err
			}

			io.Println("deleted folder", name)

			return nil
		},
	}
}

// FolderIconCmd returns the folder-icon command.
func FolderIconCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("folder-icon", flag.ContinueOnError)
	flags.Bool("clear", false, "Remove the icon reference")
	flags.Bool("delete-icon", false, "With --clear, also delete the icon file unless still in use")

	return &Command{
		Flags: flags,
		Usage: "folder-icon <folder> [file] [--clear]",
		Short: "Set or clear a folder icon",
		Exec: func(_ context.Context, io *IO, args []string) error {
			name := args[0]
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

			if clearIcon {
				icon := project.FolderIcon(doc.Folders, name)

				_, err = catalog.ClearFolderIcon(name)
				if err != nil {
					return err
				}

				io.Println("cleared icon of", name)

				if deleteIcon {
					return pruneIcon(io, catalog, icon)
				}

				return nil
			}

			err = requireFolder(doc, name)
			if err != nil {
				return err
			}

			icon, err := catalog.SetFolderIcon(name, src)
			if err != nil {
				return err
			}

			io.Println(icon)

			return nil
		},
	}
}
