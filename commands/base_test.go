package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Grusburk/intecmd/core/vos"
	"github.com/Grusburk/intecmd/core/vos/vostest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestAllCommands(t *testing.T) {
	names := ListBuiltinCommands()
	assert.Subset(t, names, []string{"cd", "ls", "pwd"})

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			if AllCommands[name] == nil {
				t.Fatal("nil command", name)
			}
			assert.NotNil(t, BuiltinProcessResolver(name))
		})
	}

	assert.Nil(t, BuiltinProcessResolver("does-not-exist"))
}

func TestMustAddCmd_duplicate(t *testing.T) {
	assert.Panics(t, func() {
		mustAddCmd("ls", Ls)
	})
}

func TestColorPrinter(t *testing.T) {
	cases := map[string]struct {
		env   string
		pty   bool
		color bool
	}{
		"auto-no-pty":  {env: "", pty: false, color: false},
		"auto-pty":     {env: "auto", pty: true, color: true},
		"always":       {env: "always", pty: false, color: true},
		"never-on-pty": {env: "never", pty: true, color: false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			var got bool
			var out string
			cmd := vostest.Command(func(virtOS vos.VOS) int {
				printer := NewColorPrinter(virtOS)
				got = printer.ShouldColor()
				out = printer.Sprint(ColorBoldBlue, "docs")
				return 0
			}, "color")
			cmd.Env = []string{vos.EnvHome + "=" + vostest.HomeDir, vos.EnvColor + "=" + tc.env}
			cmd.PTY = vos.PTY{IsPTY: tc.pty}

			assert.NoError(t, cmd.Run())
			assert.Equal(t, tc.color, got)
			if tc.color {
				assert.True(t, strings.HasPrefix(out, "\x1b[34;1mdocs\x1b["), out)
			} else {
				assert.Equal(t, "docs", out)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"invalid argument": {err: ErrInvalidArgument, want: "No such file or directory."},
		"too many flags":   {err: ErrTooManyFlags, want: "Too many flags. Try -help"},
		"unknown flag":     {err: fmt.Errorf("ls: %w", ErrUnrecognizedFlag), want: "Flag not recognized. Try -help"},
		"other":            {err: errors.New("disk on fire"), want: "disk on fire"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, userMessage(tc.err))
		})
	}
}

// Sentinel errors follow the Go convention: lower case, no trailing
// punctuation. The text users see lives in userMessage.
func TestSentinelErrorText(t *testing.T) {
	for _, err := range []error{ErrInvalidArgument, ErrTooManyFlags, ErrUnrecognizedFlag} {
		msg := err.Error()
		assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
		assert.False(t, strings.HasSuffix(msg, "."), msg)
	}
}

// Fixtures live at testdata/golden/<TestName>/<case>.golden.
func TestGoldenFixtureLayout(t *testing.T) {
	root := filepath.Join("testdata", "golden")
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		assert.Len(t, parts, 2, rel)
		assert.True(t, strings.HasPrefix(parts[0], "Test"), rel)
		assert.Equal(t, ".golden", filepath.Ext(rel), rel)
		return nil
	})
	assert.NoError(t, err)
}

// normalizeNewlines converts platform line endings so golden files are shared.
func normalizeNewlines(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

func (gts goldenTestSuite) Run(t *testing.T, cmd vos.ProcessFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(cmd, tc.Args[0], tc.Args[1:]...)
			out, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, normalizeNewlines(out))
		})
	}
}
