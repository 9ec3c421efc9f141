package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/pm/internal/project"
)

var (
	errAmbiguousProject = errors.New("ambiguous project reference")
	errConfirmRequired  = errors.New("confirmation required: pass -y to skip the prompt")
	errAborted          = errors.New("aborted")
)

// viewCatalog loads the catalog and turns load diagnostics into warnings.
func viewCatalog(o *IO, catalog *project.Catalog) (project.Document, error) {
	doc, err := catalog.View()
	if err != nil {
		return project.Document{}, err
	}

	warnDocument(o, doc)

	return doc, nil
}

func warnDocument(o *IO, doc project.Document) {
	for _, w := range doc.Warnings {
		o.Warn(w, "fix the file by hand or run `pm edit`")
	}
}

// resolveProject finds a project by id, or by name when the name is unique.
func resolveProject(projects []project.Project, ref string) (project.Project, error) {
	if ref == "" {
		return project.Project{}, project.ErrIDRequired
	}

	if p, ok := project.FindProject(projects, ref); ok {
		return p, nil
	}

	var matches []project.Project

	for _, p := range projects {
		if p.Name == ref {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return project.Project{}, fmt.Errorf("%w: %s", project.ErrProjectNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, p := range matches {
			ids = append(ids, p.ID)
		}

		return project.Project{}, fmt.Errorf("%w: %q matches %s", errAmbiguousProject, ref, strings.Join(ids, ", "))
	}
}

// requireFolder fails unless a project references folder.
func requireFolder(doc project.Document, folder string) error {
	if folder == "" {
		return project.ErrFolderRequired
	}

	if !project.FolderExists(doc.Projects, folder) {
		return fmt.Errorf("%w: %s", project.ErrFolderNotFound, folder)
	}

	return nil
}

// confirm asks a yes/no question. On a terminal the prompt goes through
// liner so line editing and Ctrl-C work; otherwise one line is read from
// the input. Without any input the caller must pass -y.
func confirm(o *IO, question string) error {
	if o.in == nil {
		return errConfirmRequired
	}

	prompt := question + " [y/N] "

	var answer string

	if f, ok := o.in.(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)

		text, err := line.Prompt(prompt)
		_ = line.Close()

		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return errAborted
			}

			return fmt.Errorf("reading answer: %w", err)
		}

		answer = text
	} else {
		o.ErrPrintf("%s", prompt)

		text, err := bufio.NewReader(o.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading answer: %w", err)
		}

		answer = text
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}
