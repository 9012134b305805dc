package curdir

import (
	"sync"
	"testing"

	"github.com/Grusburk/intecmd/core/pathconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPosix(t *testing.T) *CurrentDirectory {
	t.Helper()

	dir, err := New(pathconv.Posix, "/Program Files")
	require.NoError(t, err)
	return dir
}

func TestNew(t *testing.T) {
	_, err := New(pathconv.Posix, "/")
	assert.ErrorIs(t, err, pathconv.ErrRootBoundary)

	_, err = New(pathconv.Posix, "")
	assert.ErrorIs(t, err, pathconv.ErrNullOrEmptyPath)

	dir, err := New(pathconv.Windows, `C:\Users\me\`)
	assert.Nil(t, err)
	assert.Equal(t, `C:\Users\me`, dir.String())
	assert.Equal(t, pathconv.Windows, dir.Convention())
}

func TestCurrentDirectory_Set(t *testing.T) {
	cases := map[string]struct {
		path     string
		err      error
		expected string
	}{
		"empty":           {path: "", err: pathconv.ErrNullOrEmptyPath, expected: "/Program Files"},
		"root":            {path: "/", err: pathconv.ErrRootBoundary, expected: "/Program Files"},
		"windows-on-unix": {path: "C:/System/test", err: pathconv.ErrInvalidPathSyntax, expected: "/Program Files"},
		"nominal":         {path: "/usr/local", expected: "/usr/local"},
		"normalized":      {path: "/usr//local/", expected: "/usr/local"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			dir := newPosix(t)

			err := dir.Set(tc.path)

			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.expected, dir.String())
		})
	}
}

func TestCurrentDirectory_Update(t *testing.T) {
	dir := newPosix(t)

	from, to, err := dir.Update(func(current string) (string, error) {
		return current + "/Go", nil
	})
	assert.Nil(t, err)
	assert.Equal(t, "/Program Files", from)
	assert.Equal(t, "/Program Files/Go", to)

	// Rejected candidates keep the old value.
	_, to, err = dir.Update(func(string) (string, error) {
		return "/", nil
	})
	assert.ErrorIs(t, err, pathconv.ErrRootBoundary)
	assert.Equal(t, "/Program Files/Go", to)
	assert.Equal(t, "/Program Files/Go", dir.String())
}

func TestCurrentDirectory_concurrent(t *testing.T) {
	dir := newPosix(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = dir.Update(func(current string) (string, error) {
				return current + "/x", nil
			})
		}()
	}
	wg.Wait()

	_, segments := pathconv.Posix.Split(dir.String())
	assert.Len(t, segments, 51)
}
