package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// WatchCmd returns the watch command.
func WatchCmd(cfg *project.Config, catalog *project.Catalog) *Command {
	return &Command{
		Flags: flag.NewFlagSet("watch", flag.ContinueOnError),
		Usage: "watch",
		Short: "Print the tree and reprint it on every change",
		Long: `Print the project tree, then print it again whenever the catalog
files change, whether through pm or a hand edit. Stops on Ctrl-C.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execWatch(ctx, io, cfg, catalog)
		},
	}
}

func execWatch(ctx context.Context, io *IO, cfg *project.Config, catalog *project.Catalog) error {
	// Set up the watch before the first render so no change slips between.
	watcher, err := catalog.Watch()
	if err != nil {
		return err
	}

	renders := 0
	render := func() {
		if renders > 0 {
			io.Println()
		}

		renders++

		doc, loadErr := catalog.View()
		if loadErr != nil {
			io.ErrPrintln("error:", loadErr)

			return
		}

		// Warnings are shown per render; a long running watch must not
		// exit 1 because of a file that was fixed since.
		for _, w := range doc.Warnings {
			io.ErrPrintln("warning:", w)
		}

		renderTree(io, cfg, catalog.Icons(), doc.Projects, doc.Folders)
	}

	render()

	// Run fires subscribers on this goroutine, so render needs no locking.
	cancel := catalog.Subscribe(render)
	defer cancel()

	return watcher.Run(ctx)
}
