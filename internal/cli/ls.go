package cli

import (
	"context"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// LsCmd returns the ls command.
func LsCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	flags.Bool("flat", false, "List in stored order with a folder column")
	flags.StringP("folder", "f", "", "Only show projects in this folder")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List projects",
		Long: `List projects as a tree: folders first, then projects without a folder.
Names are sorted using the configured locale.

With --flat, projects are listed in stored order, which is the order
moves and drops operate on.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, cfg, catalog, flags)
		},
	}
}

func execLs(io *IO, cfg *project.Config, catalog *project.Catalog, flags *flag.FlagSet) error {
	doc, err := viewCatalog(io, catalog)
	if err != nil {
		return err
	}

	flat, _ := flags.GetBool("flat")
	folder, _ := flags.GetString("folder")

	projects := doc.Projects

	if flags.Changed("folder") {
		err = requireFolder(doc, folder)
		if err != nil {
			return err
		}

		projects = projectsIn(projects, folder)
	}

	if flat {
		for _, p := range projects {
			io.Println(formatFlatLine(cfg, p))
		}

		return nil
	}

	renderTree(io, cfg, catalog.Icons(), projects, doc.Folders)

	return nil
}

func projectsIn(projects []project.Project, folder string) []project.Project {
	var out []project.Project

	for _, p := range projects {
		if p.Folder == folder {
			out = append(out, p)
		}
	}

	return out
}

// renderTree prints the derived tree. Shared by ls and watch.
func renderTree(io *IO, cfg *project.Config, icons *project.IconStore, projects []project.Project, folders []project.Folder) {
	nodes := project.BuildTree(projects, project.TreeOptions{
		Folders:  folders,
		Language: cfg.Language,
	})

	for _, node := range nodes {
		switch node.Kind {
		case project.NodeFolder:
			io.Println(formatFolderLine(cfg, icons, node.Folder, len(node.Children)))

			for _, p := range node.Children {
				io.Println("  " + formatProjectLine(cfg, icons, p))
			}
		case project.NodeProject:
			io.Println(formatProjectLine(cfg, icons, node.Project))
		}
	}
}

func formatFolderLine(cfg *project.Config, icons *project.IconStore, f project.Folder, count int) string {
	var builder strings.Builder

	builder.WriteString(f.Name)
	builder.WriteString("/ (")
	builder.WriteString(plural(count, "project"))
	builder.WriteString(")")

	writeIcon(&builder, cfg, icons, f.Icon)

	return builder.String()
}

func formatProjectLine(cfg *project.Config, icons *project.IconStore, p project.Project) string {
	var builder strings.Builder

	builder.WriteString(p.ID)
	builder.WriteString(" ")
	builder.WriteString(p.Name)

	if cfg.ShowPath {
		builder.WriteString(" - ")
		builder.WriteString(p.Path)
	}

	writeIcon(&builder, cfg, icons, p.Icon)

	return builder.String()
}

func formatFlatLine(cfg *project.Config, p project.Project) string {
	folder := p.Folder
	if folder == "" {
		folder = "-"
	}

	line := p.ID + " [" + folder + "] " + p.Name
	if cfg.ShowPath {
		line += " - " + p.Path
	}

	return line
}

// writeIcon appends the icon reference. Stale references are marked so
// the user knows the default icon is shown.
func writeIcon(builder *strings.Builder, cfg *project.Config, icons *project.IconStore, icon string) {
	if !cfg.ShowIcons || icon == "" {
		return
	}

	builder.WriteString(" [icon: ")
	builder.WriteString(icon)

	if _, ok := icons.ResolveIconPath(icon); !ok {
		builder.WriteString(", missing")
	}

	builder.WriteString("]")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	return strconv.Itoa(n) + " " + word + "s"
}
