package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// resetFlags restores every package-level flag to its default.
func resetFlags() {
	verbose, quiet, noColor = false, false, false
	configPath, logFormat = "", ""
	serveHost, servePort, serveAssetsHost = "", 0, ""
	renderFormat, renderOutput = "html", ""
	renderSet = map[string]string{}
	listKinds = false
	resetConfigFlags()

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

// newTestCmd redirects rootCmd's output and returns the buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// workspace switches to a fresh directory holding the sample datasets under
// their default names, with an empty global config.
func workspace(t *testing.T) string {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	for _, name := range []string{"environmental_data.csv", "gapminder.csv"} {
		data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd, stdout, stderr := newTestCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "want exitCodeError, got %T: %v", err, err)
	assert.Equal(t, code, ece.ExitCode(), ece.Error())
}

func TestExitError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "dashkit: invalid configuration", exitError(ExitConfigError, "").Error())
	assert.Equal(t, "dashkit: dataset errors", exitError(ExitDatasetError, "").Error())
	assert.Equal(t, "dashkit: error", exitError(ExitInvalidArgs, "").Error())
	assert.Equal(t, "dashkit: x 1", exitError(ExitInvalidArgs, "dashkit: x %d", 1).Error())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "render", "list", "validate", "mcp", "config", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestVersion(t *testing.T) {
	resetFlags()
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dashkit dev\n", out)
}

func TestRoot_BadLogFormat(t *testing.T) {
	resetFlags()
	_, _, err := run(t, "--log-format", "xml", "version")
	requireExitCode(t, err, ExitInvalidArgs)
}
