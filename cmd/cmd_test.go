package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Grusburk/intecmd/core/config"
	"github.com/Grusburk/intecmd/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// The exec flag accumulates across runs of the same command tree, so this
// drives the whole flow in a single test.
func TestInitExecLogs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX paths")
	}

	configDir := t.TempDir()
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "readme.txt"), nil, 0644))

	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConvention, "posix")

	out, err := runRoot(t, "--config", configDir, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(configDir, config.ConfigurationName))
	assert.Contains(t, out, "[init] Writing default config")
	assert.Contains(t, out, "Paths follow the posix convention.\n")

	out, err = runRoot(t, "--config", configDir, "exec",
		"-c", "ls",
		"-c", "cd docs",
		"-c", "pwd",
		"-c", "cd ..",
		"-c", "cd nope",
	)
	require.NoError(t, err)
	assert.Equal(t, "Directories: docs\nFiles: readme.txt\n"+home+"/docs\nNo such file or directory.\n", out)

	fd, err := os.Open(filepath.Join(configDir, "app.log"))
	require.NoError(t, err)
	defer fd.Close()
	var report logger.Report
	require.NoError(t, logger.ReadJSONLinesLog(fd, report.Update))
	assert.Equal(t, 10, report.LogEntries)
	assert.Len(t, report.Sessions, 1)
	assert.Equal(t, 3, report.CommandNames["cd"])

	out, err = runRoot(t, "--config", configDir, "logs", "report", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "entries: 10\n")
	assert.Contains(t, out, "sessions: 1\n")

	out, err = runRoot(t, "--config", configDir, "logs", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "cd "+home+" -> "+home+"/docs")
	assert.Contains(t, out, "session end exit=0")

	_, err = runRoot(t, "--config", configDir, "logs", "cat", filepath.Join(configDir, "missing.log"))
	assert.Error(t, err)
}

func TestInitPrint(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "unused")
	t.Cleanup(func() { initPrint = false })

	out, err := runRoot(t, "--config", configDir, "init", "--print")

	require.NoError(t, err)
	assert.Equal(t, string(config.DefaultYAML()), out)
	assert.NoDirExists(t, configDir)
}

func TestBuiltins(t *testing.T) {
	out, err := runRoot(t, "builtins")
	require.NoError(t, err)
	assert.Equal(t, "cd\nls\npwd\nshell:exit\nshell:help\nshell:history\n", out)
}

func TestFormatEntry(t *testing.T) {
	le := &logger.LogEntry{
		TimestampMicros: 1136171045000000,
		SessionId:       "0123456789abcdef",
		RunCommand:      &logger.RunCommand{Command: []string{"ls", "-l"}, Status: 0},
	}

	assert.Equal(t, `2006-01-02T03:04:05Z 01234567 run "ls -l" status=0`, formatEntry(le))
}
