// Package dirreader enumerates the immediate children of a directory.
package dirreader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Grusburk/intecmd/core/pathconv"
	"github.com/spf13/afero"
)

var (
	// ErrPathNotFound is returned when the path doesn't exist.
	ErrPathNotFound = errors.New("no such file or directory")
	// ErrNotADirectory is returned when the path exists but isn't a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrEmptyResult is returned when a directory exists but its entries can't
	// be read. An empty directory is not an error.
	ErrEmptyResult = errors.New("no readable entries")
)

// Kind is the type of a directory entry.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Entry is a single child of a directory.
type Entry struct {
	Name string
	Kind Kind
}

// Listing holds the children of a directory split by kind, each sorted by name.
type Listing struct {
	Files       []string
	Directories []string
}

// Empty is true if the listing has no files and no directories.
func (l *Listing) Empty() bool {
	return len(l.Files) == 0 && len(l.Directories) == 0
}

// HasDirectory reports whether name is one of the directories, the match is
// case sensitive.
func (l *Listing) HasDirectory(name string) bool {
	for _, dir := range l.Directories {
		if dir == name {
			return true
		}
	}
	return false
}

// Reader is the only way commands look at the filesystem.
type Reader interface {
	// List returns the immediate children of path.
	List(path string) (*Listing, error)
	// Roots returns the filesystem roots that exist.
	Roots() []string
}

// FsReader reads directories from an afero filesystem.
type FsReader struct {
	fs   afero.Fs
	conv *pathconv.Convention
}

var _ Reader = (*FsReader)(nil)

// NewFsReader creates a reader over fs, paths are joined using conv.
func NewFsReader(fs afero.Fs, conv *pathconv.Convention) *FsReader {
	return &FsReader{fs: fs, conv: conv}
}

// NewOsReader creates a reader over the host filesystem.
func NewOsReader(conv *pathconv.Convention) *FsReader {
	return NewFsReader(afero.NewOsFs(), conv)
}

// Entries returns the files and directories directly under path in name order.
// Symlinks are classified by their target, broken links and special files are
// skipped.
func (r *FsReader) Entries(path string) ([]Entry, error) {
	fsPath := r.conv.FsPath(path)

	stat, err := r.fs.Stat(fsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", path, ErrPathNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w: %v", path, ErrEmptyResult, err)
	case !stat.IsDir():
		return nil, fmt.Errorf("%s: %w", path, ErrNotADirectory)
	}

	infos, err := afero.ReadDir(r.fs, fsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrEmptyResult, err)
	}

	var out []Entry
	for _, info := range infos {
		name := info.Name()
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := r.fs.Stat(r.conv.Child(path, name))
			if err != nil {
				continue
			}
			info = target
		}

		switch {
		case info.IsDir():
			out = append(out, Entry{Name: name, Kind: Directory})
		case info.Mode().IsRegular():
			out = append(out, Entry{Name: name, Kind: File})
		}
	}
	return out, nil
}

// List implements Reader.List.
func (r *FsReader) List(path string) (*Listing, error) {
	entries, err := r.Entries(path)
	if err != nil {
		return nil, err
	}

	listing := &Listing{}
	for _, e := range entries {
		switch e.Kind {
		case Directory:
			listing.Directories = append(listing.Directories, e.Name)
		default:
			listing.Files = append(listing.Files, e.Name)
		}
	}
	return listing, nil
}

// Roots implements Reader.Roots.
func (r *FsReader) Roots() []string {
	var roots []string
	for _, root := range r.conv.CandidateRoots() {
		if stat, err := r.fs.Stat(root); err == nil && stat.IsDir() {
			roots = append(roots, root)
		}
	}
	return roots
}
