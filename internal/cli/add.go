package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

var errNotADirectory = errors.New("not a directory")

// AddCmd returns the add command.
func AddCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	flags.StringP("name", "n", "", "Display name (default: directory name)")
	flags.StringP("folder", "f", "", "Put the project into this folder")

	return &Command{
		Flags: flags,
		Usage: "add <path> [flags]",
		Short: "Add a project directory",
		Long:  "Add a project directory to the catalog. Relative paths resolve against the working directory.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAdd(io, cfg, catalog, flags, args[0])
		},
	}
}

// SaveCwdCmd returns the save-cwd command.
func SaveCwdCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("save-cwd", flag.ContinueOnError)
	flags.StringP("name", "n", "", "Display name (default: directory name)")
	flags.StringP("folder", "f", "", "Put the project into this folder")

	return &Command{
		Flags: flags,
		Usage: "save-cwd [flags]",
		Short: "Add the working directory as a project",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execAdd(io, cfg, catalog, flags, cfg.EffectiveCwd)
		},
	}
}

func execAdd(io *IO, cfg *project.Config, catalog *project.Catalog, flags *flag.FlagSet, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.EffectiveCwd, path)
	}

	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", errNotADirectory, path)
	}

	name, _ := flags.GetString("name")

	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(path)
	}

	folder, _ := flags.GetString("folder")
	folder = strings.TrimSpace(folder)

	// Surface problems with the existing files before they are rewritten.
	_, err = viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	added, err := catalog.Add(name, path, folder)
	if err != nil {
		return err
	}

	io.Println(added.ID)

	return nil
}
