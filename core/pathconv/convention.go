// Package pathconv holds the OS specific rules for separators, roots and
// valid path segments.
package pathconv

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var (
	// ErrNullOrEmptyPath is returned when a path is empty.
	ErrNullOrEmptyPath = errors.New("path must not be empty")
	// ErrRootBoundary is returned when a path resolves to a bare filesystem root.
	ErrRootBoundary = errors.New("cannot move above the root directory")
	// ErrInvalidPathSyntax is returned when a path doesn't follow the convention.
	ErrInvalidPathSyntax = errors.New("invalid path")
)

const (
	NamePosix   = "posix"
	NameWindows = "windows"
)

// Convention describes how paths are written on one family of operating systems.
type Convention struct {
	// Name is "posix" or "windows".
	Name string
	// Separator joins segments.
	Separator string

	rootPattern    *regexp.Regexp // canonical root, e.g. / or C:\
	rootArgPattern *regexp.Regexp // root as typed by a user, e.g. c: or c:\
	volumePattern  *regexp.Regexp // leading volume, empty for POSIX
	segmentPattern *regexp.Regexp
	candidateRoots func() []string
}

var (
	// Posix is the /a/b/c convention.
	Posix = &Convention{
		Name:           NamePosix,
		Separator:      "/",
		rootPattern:    regexp.MustCompile(`^/$`),
		rootArgPattern: regexp.MustCompile(`^/$`),
		volumePattern:  regexp.MustCompile(`^$`),
		segmentPattern: regexp.MustCompile(`^[^/\x00]+$`),
		candidateRoots: func() []string { return []string{"/"} },
	}

	// Windows is the X:\a\b convention.
	Windows = &Convention{
		Name:           NameWindows,
		Separator:      `\`,
		rootPattern:    regexp.MustCompile(`^[A-Za-z]:\\$`),
		rootArgPattern: regexp.MustCompile(`^[A-Za-z]:\\?$`),
		volumePattern:  regexp.MustCompile(`^[A-Za-z]:$`),
		segmentPattern: regexp.MustCompile(`^[^<>:"/\\|?*\x00]+$`),
		candidateRoots: func() []string {
			var roots []string
			for drive := 'A'; drive <= 'Z'; drive++ {
				roots = append(roots, string(drive)+`:\`)
			}
			return roots
		},
	}
)

// ForOS returns the convention used by the given GOOS value.
func ForOS(goos string) *Convention {
	if goos == "windows" {
		return Windows
	}
	return Posix
}

// Host returns the convention of the running operating system.
func Host() *Convention {
	return ForOS(runtime.GOOS)
}

// ByName looks up a convention, "auto" selects the host convention.
func ByName(name string) (*Convention, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return Host(), nil
	case NamePosix:
		return Posix, nil
	case NameWindows:
		return Windows, nil
	default:
		return nil, fmt.Errorf("unknown path convention %q", name)
	}
}

func (c *Convention) String() string {
	return c.Name
}

// IsRoot reports whether p is exactly a filesystem root.
func (c *Convention) IsRoot(p string) bool {
	return c.rootPattern.MatchString(p)
}

// IsRootArg reports whether a cd argument names a root.
func (c *Convention) IsRootArg(arg string) bool {
	return c.rootArgPattern.MatchString(arg)
}

// IsSegment reports whether name can be used as a single path segment.
func (c *Convention) IsSegment(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return c.segmentPattern.MatchString(name)
}

// CandidateRoots lists every root the convention can address, whether or not
// it exists on the machine.
func (c *Convention) CandidateRoots() []string {
	return c.candidateRoots()
}

// SameRoot compares a user supplied root label with an enumerated root,
// ignoring case and a trailing separator.
func (c *Convention) SameRoot(label, root string) bool {
	label = strings.ToLower(label)
	root = strings.ToLower(root)
	return root == label || root == label+c.Separator
}

// RootTarget converts a root label to the directory cd moves to.
//
// For POSIX this is "/" itself, which the current directory never accepts.
// For Windows it is the upper-cased drive designator, e.g. "C:".
func (c *Convention) RootTarget(label string) string {
	if c.Name == NamePosix {
		return c.Separator
	}
	return strings.ToUpper(strings.TrimSuffix(label, c.Separator))
}

// FsPath returns the form of p to hand to the filesystem. Windows reads a bare
// drive such as C: as that drive's working directory, so it becomes C:\.
func (c *Convention) FsPath(p string) string {
	if c.Name == NameWindows && c.volumePattern.MatchString(p) {
		return p + c.Separator
	}
	return p
}

// Split breaks an absolute path into its volume and segments.
func (c *Convention) Split(p string) (volume string, segments []string) {
	if c.Name == NameWindows {
		if idx := strings.Index(p, c.Separator); idx >= 0 {
			volume, p = p[:idx], p[idx:]
		} else {
			return p, nil
		}
	}

	for _, seg := range strings.Split(p, c.Separator) {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return volume, segments
}

// Join builds an absolute path. With no segments the root of the volume is
// returned.
func (c *Convention) Join(volume string, segments []string) string {
	return volume + c.Separator + strings.Join(segments, c.Separator)
}

// Child appends a single segment to p.
func (c *Convention) Child(p, name string) string {
	return strings.TrimSuffix(p, c.Separator) + c.Separator + name
}

// Parent returns p with its last segment removed. The parent of a first level
// directory is the root.
func (c *Convention) Parent(p string) string {
	volume, segments := c.Split(p)
	if len(segments) == 0 {
		return c.Join(volume, nil)
	}
	return c.Join(volume, segments[:len(segments)-1])
}

// Normalize collapses repeated separators and removes a trailing separator,
// roots are returned unchanged.
func (c *Convention) Normalize(p string) string {
	if c.IsRoot(p) {
		return p
	}
	volume, segments := c.Split(p)
	if c.Name == NameWindows && len(segments) == 0 {
		if strings.HasSuffix(p, c.Separator) {
			return volume + c.Separator
		}
		return volume
	}
	return c.Join(volume, segments)
}

// Validate checks that p names a directory below a root and returns its
// normalized form.
func (c *Convention) Validate(p string) (string, error) {
	if p == "" {
		return "", ErrNullOrEmptyPath
	}

	if !c.isAbs(p) {
		return "", fmt.Errorf("%q: %w: not an absolute %s path", p, ErrInvalidPathSyntax, c.Name)
	}

	normalized := c.Normalize(p)
	if c.IsRoot(normalized) {
		return "", fmt.Errorf("%q: %w", p, ErrRootBoundary)
	}

	volume, segments := c.Split(normalized)
	if !c.volumePattern.MatchString(volume) {
		return "", fmt.Errorf("%q: %w: bad volume %q", p, ErrInvalidPathSyntax, volume)
	}
	for _, seg := range segments {
		if !c.IsSegment(seg) {
			return "", fmt.Errorf("%q: %w: bad segment %q", p, ErrInvalidPathSyntax, seg)
		}
	}

	return normalized, nil
}

func (c *Convention) isAbs(p string) bool {
	if c.Name == NameWindows {
		volume, _ := c.Split(p)
		return c.volumePattern.MatchString(volume)
	}
	return strings.HasPrefix(p, c.Separator)
}
