package cli_test

import (
	"testing"

	"github.com/calvinalkan/pm/internal/cli"
)

func Test_Folders_Lists_In_First_Appearance_Order(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	for _, dir := range []string{"a", "b", "c"} {
		c.Mkdir(dir)
	}

	c.MustRun("add", "a", "-f", "Zoo")
	c.MustRun("add", "b", "-f", "Apps")
	c.MustRun("add", "c", "-f", "Zoo")

	stdout := c.MustRun("folders")
	assertOrder(t, stdout, "Zoo/ (2 projects)", "Apps/ (1 project)")
}

func Test_Folder_Rename_Updates_Projects(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("a")

	id := c.MustRun("add", "a", "-f", "Web")

	stdout := c.MustRun("folder-rename", "Web", "Sites")
	cli.AssertContains(t, stdout, "renamed Web to Sites")

	cli.AssertContains(t, c.MustRun("show", id), "folder=Sites")

	stderr := c.MustFail("folder-rename", "Nope", "X")
	cli.AssertContains(t, stderr, "folder not found: Nope")

	stderr = c.MustFail("folder-rename", "Sites")
	cli.AssertContains(t, stderr, "name is required")
}

func Test_Folder_Rename_Onto_Existing_Merges(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("a")
	c.Mkdir("b")

	c.MustRun("add", "a", "-f", "Web")
	c.MustRun("add", "b", "-f", "Sites")

	c.MustRun("folder-rename", "Web", "Sites")

	stdout := c.MustRun("folders")
	cli.AssertContains(t, stdout, "Sites/ (2 projects)")
	cli.AssertNotContains(t, stdout, "Web/")
}

func Test_Folder_Rm_Moves_Projects_To_Root(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("a")
	c.Mkdir("b")

	a := c.MustRun("add", "a", "-f", "Web")
	b := c.MustRun("add", "b", "-f", "Web")

	stderr := c.MustFail("folder-rm", "Web")
	cli.AssertContains(t, stderr, "confirmation required")

	stdout := c.MustRun("folder-rm", "Web", "-y")
	cli.AssertContains(t, stdout, "deleted folder Web")

	assertOrder(t, c.MustRun("ls", "--flat"), a+" [-]", b+" [-]")
	cli.AssertNotContains(t, c.MustRun("folders"), "Web")

	stderr = c.MustFail("folder-rm", "Web", "-y")
	cli.AssertContains(t, stderr, "folder not found: Web")
}

func Test_Folder_Icon_Set_Show_And_Clear(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Mkdir("a")
	c.WriteFile("art/web.svg", "<svg/>")

	c.MustRun("add", "a", "-f", "Web")

	stdout := c.MustRun("folder-icon", "Web", "art/web.svg")
	if stdout != "web.svg" {
		t.Fatalf("stored name=%q, want=%q", stdout, "web.svg")
	}

	cli.AssertContains(t, c.MustRun("ls"), "Web/ (1 project) [icon: web.svg]")

	c.MustRun("folder-icon", "Web", "--clear")
	cli.AssertNotContains(t, c.MustRun("ls"), "[icon:")

	stderr := c.MustFail("folder-icon", "Nope", "art/web.svg")
	cli.AssertContains(t, stderr, "folder not found: Nope")
}
