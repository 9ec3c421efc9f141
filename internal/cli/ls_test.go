package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/pm/internal/cli"
)

// assertOrder fails unless each of parts appears in content after the
// previous one.
func assertOrder(t *testing.T, content string, parts ...string) {
	t.Helper()

	pos := 0

	for _, part := range parts {
		idx := strings.Index(content[pos:], part)
		if idx < 0 {
			t.Fatalf("expected %q after position %d\ncontent:\n%s", part, pos, content)
		}

		pos += idx + len(part)
	}
}

func Test_Ls_Lists_Folders_First_Then_Sorted_Projects(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	for _, dir := range []string{"zeta", "alpha", "web1", "web2", "tool"} {
		c.Mkdir(dir)
	}

	c.MustRun("add", "zeta")
	c.MustRun("add", "alpha")
	c.MustRun("add", "web2", "-f", "Web")
	c.MustRun("add", "web1", "-f", "Web")
	c.MustRun("add", "tool", "-f", "Tools")

	stdout := c.MustRun("ls")

	assertOrder(t, stdout,
		"Tools/ (1 project)",
		" tool - ",
		"Web/ (2 projects)",
		" web1 - ",
		" web2 - ",
		" alpha - ",
		" zeta - ",
	)
}

func Test_Ls_Flat_Keeps_Stored_Order(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("zeta")
	c.Mkdir("alpha")

	zeta := c.MustRun("add", "zeta", "-f", "Z")
	alpha := c.MustRun("add", "alpha")

	stdout := c.MustRun("ls", "--flat")

	assertOrder(t, stdout, zeta+" [Z] zeta", alpha+" [-] alpha")
}

func Test_Ls_Folder_Filter(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("a")
	c.Mkdir("b")

	c.MustRun("add", "a", "-f", "Web")
	c.MustRun("add", "b")

	stdout := c.MustRun("ls", "--folder", "Web")
	cli.AssertContains(t, stdout, " a - ")
	cli.AssertNotContains(t, stdout, " b - ")

	stderr := c.MustFail("ls", "--folder", "Nope")
	cli.AssertContains(t, stderr, "folder not found: Nope")
}

func Test_Ls_Hides_Paths_When_Configured(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	dir := c.Mkdir("api")
	c.WriteFile("pm.json", `{
		// paths are noisy
		"show_path": false,
	}`)

	c.MustRun("add", "api")

	stdout := c.MustRun("-c", "pm.json", "ls")
	cli.AssertContains(t, stdout, " api")
	cli.AssertNotContains(t, stdout, dir)
}

func Test_Ls_Empty_Catalog_Prints_Nothing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.Run("ls")
	if code != 0 || stdout != "" || stderr != "" {
		t.Errorf("got code=%d stdout=%q stderr=%q, want clean empty run", code, stdout, stderr)
	}
}

func Test_Ls_Warns_About_Malformed_Catalog(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("data/pm/project-manager.json", `{"not": "a list"}`)

	stdout, stderr, code := c.Run("ls")

	if got, want := code, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if stdout != "" {
		t.Errorf("stdout=%q, want empty", stdout)
	}

	cli.AssertContains(t, stderr, "warning: malformed document project-manager.json")
	cli.AssertContains(t, stderr, "pm edit")
}

func Test_Ls_Accepts_Hand_Edited_Catalog(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("data/pm/project-manager.json", `[
		// added by hand
		{"id": "p1", "name": "hand", "path": "/src/hand", "folder": "Misc"},
	]`)

	stdout := c.MustRun("ls")
	cli.AssertContains(t, stdout, "Misc/ (1 project)")
	cli.AssertContains(t, stdout, "p1 hand - /src/hand")
}

func Test_Ls_Marks_Missing_Icons(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("data/pm/project-manager.json",
		`[{"id": "p1", "name": "hand", "path": "/src/hand", "icon": "gone.png"}]`)

	stdout := c.MustRun("ls")
	cli.AssertContains(t, stdout, "p1 hand - /src/hand [icon: gone.png, missing]")
}
