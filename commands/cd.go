package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/vos"
)

// ErrInvalidArgument is returned when cd can't find the requested directory.
var ErrInvalidArgument = errors.New("no such file or directory")

const msgInvalidArgument = "No such file or directory."

const (
	argParent = ".."
	argHome   = "~"
)

// IntentKind says where cd should move.
type IntentKind int

const (
	ToParent IntentKind = iota
	ToHome
	ToRoot
	ToChild
)

func (k IntentKind) String() string {
	switch k {
	case ToParent:
		return "parent"
	case ToHome:
		return "home"
	case ToRoot:
		return "root"
	case ToChild:
		return "child"
	default:
		return fmt.Sprintf("IntentKind(%d)", int(k))
	}
}

// Intent is a parsed cd request. Target holds the root label for ToRoot and
// the directory name for ToChild.
type Intent struct {
	Kind   IntentKind
	Target string
}

// ChangeDirectory moves a current directory, checking targets against a
// directory reader.
type ChangeDirectory struct {
	Dir    *curdir.CurrentDirectory
	Reader dirreader.Reader
	// Home returns the user's home directory.
	Home func() (string, error)
}

// ParseIntent interprets the arguments of cd, args[0] is the command name.
//
// More than one argument is joined with spaces into a single directory name so
// names containing spaces don't need quoting.
func (c *ChangeDirectory) ParseIntent(args []string) (Intent, error) {
	conv := c.Dir.Convention()

	switch len(args) {
	case 0, 1:
		return Intent{Kind: ToHome}, nil
	case 2:
		arg := args[1]
		switch {
		case arg == argParent:
			return Intent{Kind: ToParent}, nil
		case arg == argHome:
			return Intent{Kind: ToHome}, nil
		case conv.IsSegment(arg):
			return Intent{Kind: ToChild, Target: arg}, nil
		case conv.IsRootArg(arg):
			return Intent{Kind: ToRoot, Target: strings.ToLower(arg)}, nil
		default:
			return Intent{}, ErrInvalidArgument
		}
	default:
		return Intent{Kind: ToChild, Target: strings.Join(args[1:], " ")}, nil
	}
}

// Apply moves the directory. On error the directory is unchanged and from and
// to are both the current directory.
func (c *ChangeDirectory) Apply(intent Intent) (from, to string, err error) {
	conv := c.Dir.Convention()

	return c.Dir.Update(func(current string) (string, error) {
		switch intent.Kind {
		case ToParent:
			return conv.Parent(current), nil

		case ToHome:
			return c.Home()

		case ToRoot:
			for _, root := range c.Reader.Roots() {
				if conv.SameRoot(intent.Target, root) {
					return conv.RootTarget(intent.Target), nil
				}
			}
			return "", ErrInvalidArgument

		case ToChild:
			listing, err := c.Reader.List(current)
			if err != nil || !listing.HasDirectory(intent.Target) {
				return "", ErrInvalidArgument
			}
			return conv.Child(current, intent.Target), nil

		default:
			return "", fmt.Errorf("unknown intent %v", intent.Kind)
		}
	})
}

// Run parses args and applies the result.
func (c *ChangeDirectory) Run(args []string) (from, to string, err error) {
	intent, err := c.ParseIntent(args)
	if err != nil {
		current := c.Dir.String()
		return current, current, err
	}
	return c.Apply(intent)
}

// Cd implements the cd command.
//
//	cd          move to the home directory
//	cd ~        move to the home directory
//	cd ..       move up one directory
//	cd NAME     move into the child directory NAME
//	cd ROOT     move to a filesystem root, e.g. c: on Windows
func Cd(virtOS vos.VOS) int {
	cmd := &ChangeDirectory{
		Dir:    virtOS.WorkingDir(),
		Reader: virtOS.DirReader(),
		Home:   virtOS.UserHomeDir,
	}

	from, to, err := cmd.Run(virtOS.Args())
	if err != nil {
		virtOS.LogInvalidInvocation(err)
		writeLine(virtOS.Stdout(), userMessage(err))
		return 1
	}

	if from != to {
		virtOS.LogDirectoryChange(from, to)
	}
	return 0
}

var _ vos.ProcessFunc = Cd

func init() {
	mustAddCmd("cd", Cd)
}
