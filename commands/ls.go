package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/vos"
)

var (
	// ErrTooManyFlags is returned when ls gets more than one flag.
	ErrTooManyFlags = errors.New("too many flags")
	// ErrUnrecognizedFlag is returned when ls gets a flag it doesn't know.
	ErrUnrecognizedFlag = errors.New("flag not recognized")
)

const (
	msgTooManyFlags     = "Too many flags. Try -help"
	msgUnrecognizedFlag = "Flag not recognized. Try -help"
	noDirectories       = "No directories in this directory"
	noFiles             = "No files in this directory"
)

// ListFlag is the single optional flag ls accepts.
type ListFlag string

const (
	FlagNone      ListFlag = ""
	FlagLong      ListFlag = "-l"
	FlagFiles     ListFlag = "-f"
	FlagLongFiles ListFlag = "-lf"
	FlagDirs      ListFlag = "-d"
	FlagLongDirs  ListFlag = "-ld"
	FlagHelp      ListFlag = "-help"
)

var lsFlagHelp = []struct {
	flag ListFlag
	text string
}{
	{FlagLong, "list directories and files, one per line"},
	{FlagFiles, "list files"},
	{FlagLongFiles, "list files, one per line"},
	{FlagDirs, "list directories"},
	{FlagLongDirs, "list directories, one per line"},
	{FlagHelp, "show this help"},
}

// ParseListFlag validates the arguments of ls, args[0] is the command name.
func ParseListFlag(args []string) (ListFlag, error) {
	switch {
	case len(args) <= 1:
		return FlagNone, nil
	case len(args) > 2:
		return FlagNone, ErrTooManyFlags
	}

	flag := ListFlag(args[1])
	for _, known := range lsFlagHelp {
		if known.flag == flag {
			return flag, nil
		}
	}
	return FlagNone, ErrUnrecognizedFlag
}

// LsHelp returns the usage text ls prints for -help.
func LsHelp() string {
	lines := []string{
		"Usage: ls [-l|-f|-lf|-d|-ld|-help]",
		"List the directories and files in the current directory.",
		"",
	}
	for _, h := range lsFlagHelp {
		lines = append(lines, "  "+padRight(string(h.flag), 6)+" "+h.text)
	}
	return strings.Join(lines, newline)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Lister renders directory listings.
type Lister struct {
	Reader dirreader.Reader
	// DirName decorates directory names, it may be nil.
	DirName func(string) string
}

// List writes the listing of path to w according to the flag in args.
//
// Flag errors are reported before the directory is read, so a bad invocation
// never produces partial output.
func (l *Lister) List(w io.Writer, path string, args []string) error {
	flag, err := ParseListFlag(args)
	if err != nil {
		writeLine(w, userMessage(err))
		return err
	}

	if flag == FlagHelp {
		writeLine(w, LsHelp())
		return nil
	}

	listing, err := l.Reader.List(path)
	if err != nil {
		writeLine(w, userMessage(err))
		return err
	}

	l.render(w, flag, listing)
	return nil
}

func (l *Lister) render(w io.Writer, flag ListFlag, listing *dirreader.Listing) {
	dirs := make([]string, len(listing.Directories))
	for i, d := range listing.Directories {
		if l.DirName != nil {
			d = l.DirName(d)
		}
		dirs[i] = d
	}
	files := listing.Files

	inline := func(title string, names []string, placeholder string) {
		if len(names) == 0 {
			writeLine(w, title+placeholder)
			return
		}
		writeLine(w, title+strings.Join(names, " "))
	}

	perLine := func(title string, names []string, placeholder string) {
		writeLine(w, title)
		if len(names) == 0 {
			writeLine(w, placeholder)
		}
		for _, name := range names {
			writeLine(w, name)
		}
	}

	switch flag {
	case FlagLong:
		perLine("Directories", dirs, noDirectories)
		perLine("Files", files, noFiles)
	case FlagFiles:
		inline("Files: ", files, noFiles)
	case FlagLongFiles:
		perLine("Files:", files, noFiles)
	case FlagDirs:
		inline("Directories: ", dirs, noDirectories)
	case FlagLongDirs:
		perLine("Directories:", dirs, noDirectories)
	default:
		inline("Directories: ", dirs, noDirectories)
		inline("Files: ", files, noFiles)
	}
}

// Ls implements the ls command over the current directory.
func Ls(virtOS vos.VOS) int {
	color := NewColorPrinter(virtOS)
	lister := &Lister{
		Reader: virtOS.DirReader(),
		DirName: func(name string) string {
			return color.Sprint(ColorBoldBlue, name)
		},
	}

	if err := lister.List(virtOS.Stdout(), virtOS.Getwd(), virtOS.Args()); err != nil {
		virtOS.LogInvalidInvocation(err)
		return 1
	}
	return 0
}

var _ vos.ProcessFunc = Ls

func init() {
	mustAddCmd("ls", Ls)
}
