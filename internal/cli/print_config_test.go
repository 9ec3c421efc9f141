package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/pm/internal/cli"
)

func Test_PrintConfig_Defaults(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, "data_dir="+c.DataDir())
	cli.AssertContains(t, stdout, "show_path=true")
	cli.AssertContains(t, stdout, "show_icons=true")
	cli.AssertContains(t, stdout, "(defaults only)")
	cli.AssertNotContains(t, stdout, "editor=")
}

func Test_PrintConfig_Shows_Global_And_Explicit_Sources(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	global := c.WriteFile("home/.config/pm/config.json", `{"editor": "nano", "locale": "de"}`)
	explicit := c.WriteFile("extra.json", `{"show_icons": false}`)

	stdout := c.MustRun("-c", "extra.json", "print-config")

	cli.AssertContains(t, stdout, "editor=nano")
	cli.AssertContains(t, stdout, "locale=de")
	cli.AssertContains(t, stdout, "show_icons=false")
	cli.AssertContains(t, stdout, "global_config="+global)
	cli.AssertContains(t, stdout, "explicit_config="+explicit)
}

func Test_PrintConfig_Rejects_Invalid_Locale(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("bad.json", `{"locale": "not a locale!"}`)

	stderr := c.MustFail("-c", filepath.Join(c.Dir, "bad.json"), "print-config")
	cli.AssertContains(t, stderr, "invalid locale")
}
