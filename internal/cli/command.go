package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/pm/internal/project"
)

// Command is one pm subcommand.
//
// Usage doubles as the argument contract: every <placeholder> directly
// after the command name is a required positional argument, checked
// before Exec runs. [optional] arguments and flags are left to Exec.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is shown after "pm" in help, e.g. "mv <project> [folder]".
	// The first word is the command name.
	Usage string

	// Short is a one-line description for the command listing.
	Short string

	// Long is the full description shown by "pm <cmd> --help".
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags and required arguments are checked.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// placeholderErrors names the error reported for each missing argument.
var placeholderErrors = map[string]error{
	"project": project.ErrIDRequired,
	"path":    project.ErrPathRequired,
	"folder":  project.ErrFolderRequired,
	"name":    project.ErrNameRequired,
	"file":    errIconFileRequired,
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the line shown in the command listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// required returns the placeholders of the leading required arguments.
func (c *Command) required() []string {
	fields := strings.Fields(c.Usage)

	var names []string

	for _, field := range fields[1:] {
		name, ok := strings.CutPrefix(field, "<")
		if !ok {
			break
		}

		names = append(names, strings.TrimSuffix(name, ">"))
	}

	return names
}

// checkArgs reports the first required argument missing from args.
func (c *Command) checkArgs(args []string) error {
	required := c.required()
	if len(args) >= len(required) {
		return nil
	}

	missing := required[len(args)]
	if err, ok := placeholderErrors[missing]; ok {
		return err
	}

	return fmt.Errorf("<%s> is required", missing)
}

// PrintHelp prints the full help output for "pm <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: pm", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if strings.Contains(c.Usage, "<project>") {
		o.Println()
		o.Println("<project> is a project id, or a project name that is unique in the catalog.")
	}

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder

		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags, checks required arguments and executes the command.
// Returns the exit code. Errors go to stderr followed by a hint when the
// failure has an obvious remedy.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	err = c.checkArgs(c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln("usage: pm", c.Usage)

		return 1
	}

	err = c.Exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		if hint := errorHint(err); hint != "" {
			o.ErrPrintln("hint:", hint)
		}

		return 1
	}

	return 0
}

// errorHint suggests the next step for failures the user can resolve.
func errorHint(err error) string {
	switch {
	case project.IsLockTimeout(err):
		return "the catalog is busy, another pm process is changing it. Try again"
	case errors.Is(err, errAmbiguousProject):
		return "refer to the project by its id"
	case errors.Is(err, project.ErrProjectNotFound):
		return "run `pm ls` to list projects"
	case errors.Is(err, project.ErrFolderNotFound):
		return "run `pm folders` to list folders"
	default:
		return ""
	}
}
