package commands

import (
	"bytes"
	"errors"
	"path"
	"strings"
	"testing"

	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
	"github.com/Grusburk/intecmd/core/vos"
	"github.com/Grusburk/intecmd/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLs(t *testing.T) {
	cases := goldenTestSuite{
		"help":       {[]string{"ls", "-help"}},
		"too-many":   {[]string{"ls", "-l", "-f"}},
		"unknown":    {[]string{"ls", "-x"}},
		"empty-home": {[]string{"ls"}},
	}

	cases.Run(t, Ls)
}

// populate creates the directories and files under vostest.HomeDir.
func populate(t *testing.T, fs afero.Fs, dirs, files []string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(path.Join(vostest.HomeDir, d), 0755))
	}
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, path.Join(vostest.HomeDir, f), []byte(f), 0644))
	}
}

func runLs(t *testing.T, dirs, files []string, args ...string) (string, *vostest.Cmd) {
	t.Helper()
	cmd := vostest.Command(Ls, "ls", args...)
	populate(t, cmd.FS(), dirs, files)

	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	return string(normalizeNewlines(out)), cmd
}

func TestLs_flags(t *testing.T) {
	dirs := []string{"d2", "d1", "d3"}
	files := []string{"f2", "f1"}

	cases := map[string]struct {
		args []string
		want string
	}{
		"none": {
			want: "Directories: d1 d2 d3\nFiles: f1 f2\n",
		},
		"long": {
			args: []string{"-l"},
			want: "Directories\nd1\nd2\nd3\nFiles\nf1\nf2\n",
		},
		"files": {
			args: []string{"-f"},
			want: "Files: f1 f2\n",
		},
		"long-files": {
			args: []string{"-lf"},
			want: "Files:\nf1\nf2\n",
		},
		"dirs": {
			args: []string{"-d"},
			want: "Directories: d1 d2 d3\n",
		},
		"long-dirs": {
			args: []string{"-ld"},
			want: "Directories:\nd1\nd2\nd3\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, cmd := runLs(t, dirs, files, tc.args...)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, 0, cmd.ExitStatus)
		})
	}
}

func TestLs_empty(t *testing.T) {
	cases := map[string]struct {
		dirs  []string
		files []string
		args  []string
		want  string
	}{
		"nothing": {
			want: "Directories: No directories in this directory\nFiles: No files in this directory\n",
		},
		"nothing-long": {
			args: []string{"-l"},
			want: "Directories\nNo directories in this directory\nFiles\nNo files in this directory\n",
		},
		"no-files": {
			dirs: []string{"src"},
			args: []string{"-f"},
			want: "Files: No files in this directory\n",
		},
		"no-files-long": {
			dirs: []string{"src"},
			args: []string{"-lf"},
			want: "Files:\nNo files in this directory\n",
		},
		"no-dirs": {
			files: []string{"notes.txt"},
			args:  []string{"-d"},
			want:  "Directories: No directories in this directory\n",
		},
		"no-dirs-long": {
			files: []string{"notes.txt"},
			args:  []string{"-ld"},
			want:  "Directories:\nNo directories in this directory\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, cmd := runLs(t, tc.dirs, tc.files, tc.args...)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, 0, cmd.ExitStatus)
		})
	}
}

func TestLs_help(t *testing.T) {
	out, cmd := runLs(t, []string{"d1"}, []string{"f1"}, "-help")

	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, strings.ReplaceAll(LsHelp(), "\r\n", "\n"), strings.TrimRight(out, "\n"))
	assert.NotContains(t, out, "d1")
}

func TestLs_invalidFlags(t *testing.T) {
	const (
		tooMany      = "Too many flags. Try -help\n"
		unrecognized = "Flag not recognized. Try -help\n"
	)

	cases := map[string]struct {
		args    []string
		wantErr error
		wantOut string
	}{
		"two flags":      {args: []string{"-l", "-f"}, wantErr: ErrTooManyFlags, wantOut: tooMany},
		"three flags":    {args: []string{"-l", "-f", "-d"}, wantErr: ErrTooManyFlags, wantOut: tooMany},
		"unknown":        {args: []string{"-x"}, wantErr: ErrUnrecognizedFlag, wantOut: unrecognized},
		"wrong case":     {args: []string{"-L"}, wantErr: ErrUnrecognizedFlag, wantOut: unrecognized},
		"not a flag":     {args: []string{"docs"}, wantErr: ErrUnrecognizedFlag, wantOut: unrecognized},
		"combined order": {args: []string{"-fl"}, wantErr: ErrUnrecognizedFlag, wantOut: unrecognized},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out, cmd := runLs(t, []string{"d1"}, []string{"f1"}, tc.args...)

			assert.Equal(t, tc.wantOut, out)
			assert.Equal(t, 1, cmd.ExitStatus)
			require.Len(t, cmd.Events.Events, 2)
			assert.Equal(t, &logger.InvalidInvocation{
				Command: append([]string{"ls"}, tc.args...),
				Error:   tc.wantErr.Error(),
			}, cmd.Events.Events[0])
		})
	}
}

type countingReader struct {
	listing *dirreader.Listing
	err     error
	calls   int
}

func (c *countingReader) List(string) (*dirreader.Listing, error) {
	c.calls++
	return c.listing, c.err
}

func (c *countingReader) Roots() []string {
	return []string{"/"}
}

func TestLister_flagErrorsSkipReader(t *testing.T) {
	reader := &countingReader{listing: &dirreader.Listing{}}
	lister := &Lister{Reader: reader}

	var buf bytes.Buffer
	err := lister.List(&buf, "/", []string{"ls", "-q"})

	assert.ErrorIs(t, err, ErrUnrecognizedFlag)
	assert.Equal(t, 0, reader.calls)

	buf.Reset()
	assert.NoError(t, lister.List(&buf, "/", []string{"ls", "-help"}))
	assert.Equal(t, 0, reader.calls)
}

func TestLs_readerError(t *testing.T) {
	reader := &countingReader{err: dirreader.ErrEmptyResult}

	cmd := vostest.Command(Ls, "ls")
	cmd.Reader = reader
	out, err := cmd.CombinedOutput()

	require.NoError(t, err)
	assert.Equal(t, 1, cmd.ExitStatus)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, dirreader.ErrEmptyResult.Error()+"\n", string(normalizeNewlines(out)))
}

func TestLs_followsWorkingDir(t *testing.T) {
	cmd := vostest.Command(Ls, "ls", "-l")
	cmd.Dir = path.Join(vostest.HomeDir, "src")
	populate(t, cmd.FS(), []string{"src/pkg"}, []string{"README", "src/main.go"})

	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, "Directories\npkg\nFiles\nmain.go\n", string(normalizeNewlines(out)))
}

func TestLs_color(t *testing.T) {
	cmd := vostest.Command(Ls, "ls", "-d")
	cmd.Env = []string{vos.EnvHome + "=" + vostest.HomeDir, vos.EnvColor + "=always"}
	populate(t, cmd.FS(), []string{"docs"}, []string{"docs.txt"})

	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "Directories: \x1b[34;1mdocs\x1b["), "got %q", out)
}

func TestParseListFlag(t *testing.T) {
	for _, flag := range []ListFlag{FlagLong, FlagFiles, FlagLongFiles, FlagDirs, FlagLongDirs, FlagHelp} {
		got, err := ParseListFlag([]string{"ls", string(flag)})
		assert.NoError(t, err)
		assert.Equal(t, flag, got)
	}

	got, err := ParseListFlag([]string{"ls"})
	assert.NoError(t, err)
	assert.Equal(t, FlagNone, got)

	_, err = ParseListFlag([]string{"ls", ""})
	assert.True(t, errors.Is(err, ErrUnrecognizedFlag))
}
