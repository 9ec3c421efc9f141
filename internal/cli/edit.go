package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// EditCmd returns the edit command.
func EditCmd(cfg *project.Config, catalog *project.Catalog, env map[string]string) *Command {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	flags.Bool("folders", false, "Edit the folder metadata file instead")

	return &Command{
		Flags: flags,
		Usage: "edit [--folders]",
		Short: "Open the catalog file in an editor",
		Long: `Open the catalog file in your editor.

The editor is taken from the config "editor" key, then $EDITOR, then
the first of zed, vi, nano found on PATH. The file is checked when the
editor exits and any problems are reported as warnings.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			foldersFile, _ := flags.GetBool("folders")

			return execEdit(ctx, io, cfg, catalog, env, foldersFile)
		},
	}
}

func execEdit(ctx context.Context, io *IO, cfg *project.Config, catalog *project.Catalog, env map[string]string, foldersFile bool) error {
	store := catalog.Store()

	path := store.ProjectsPath()
	if foldersFile {
		path = store.FoldersPath()
	}

	// The editor needs a file to open.
	err := store.EnsureFile(path)
	if err != nil {
		return err
	}

	editor, err := resolveEditor(cfg, env)
	if err != nil {
		return err
	}

	err = runEditor(ctx, editor, path)
	if err != nil {
		return err
	}

	_, err = viewCatalog(io, catalog)

	return err
}

// resolveEditor checks for an available editor using the env map.
// Priority: config.Editor -> $EDITOR -> zed -> vi -> nano -> error.
func resolveEditor(cfg *project.Config, env map[string]string) (string, error) {
	// 1. Check config.Editor
	if cfg.Editor != "" {
		_, lookErr := exec.LookPath(cfg.Editor)
		if lookErr == nil {
			return cfg.Editor, nil
		}
	}

	// 2. Check $EDITOR from env map
	if editor := env["EDITOR"]; editor != "" {
		_, lookErr := exec.LookPath(editor)
		if lookErr == nil {
			return editor, nil
		}
	}

	// 3. Fall back to well-known editors
	for _, candidate := range []string{"zed", "vi", "nano"} {
		_, lookErr := exec.LookPath(candidate)
		if lookErr == nil {
			return candidate, nil
		}
	}

	return "", project.ErrNoEditorFound
}

var errEditorFailed = errors.New("editor failed")

func runEditor(ctx context.Context, editor, path string) error {
	// zed returns immediately unless told to wait
	var cmd *exec.Cmd

	if filepath.Base(editor) == "zed" {
		cmd = exec.CommandContext(ctx, editor, "--wait", path)
	} else {
		cmd = exec.CommandContext(ctx, editor, path)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return fmt.Errorf("%w: %s exited with code %d", errEditorFailed, editor, exitErr.ExitCode())
		}

		return fmt.Errorf("%w: %w", errEditorFailed, runErr)
	}

	return nil
}
