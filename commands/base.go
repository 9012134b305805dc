package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/Grusburk/intecmd/core/vos"
	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
)

// AllCommands holds a list of all registered commands
var AllCommands = make(map[string]vos.ProcessFunc)

func mustAddCmd(name string, cmd vos.ProcessFunc) {
	if _, ok := AllCommands[name]; ok {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	AllCommands[name] = cmd
}

// BuiltinProcessResolver looks up registered commands by name.
func BuiltinProcessResolver(name string) vos.ProcessFunc {
	return AllCommands[name]
}

var _ vos.ProcessResolver = BuiltinProcessResolver

// ListBuiltinCommands returns the names of all registered commands in order.
func ListBuiltinCommands() []string {
	var names []string
	for name := range AllCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// userMessage returns the text shown to the user for err.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return msgInvalidArgument
	case errors.Is(err, ErrTooManyFlags):
		return msgTooManyFlags
	case errors.Is(err, ErrUnrecognizedFlag):
		return msgUnrecognizedFlag
	default:
		return err.Error()
	}
}

// newline is the platform's line terminator.
var newline = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// writeLine writes the values separated by spaces followed by the platform's
// line terminator.
func writeLine(w io.Writer, a ...interface{}) {
	fmt.Fprint(w, strings.TrimSuffix(fmt.Sprintln(a...), "\n"), newline)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(virtOS vos.VOS, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(virtOS.Args(), nil); err != nil {
		virtOS.LogInvalidInvocation(err)
		fmt.Fprintf(virtOS.Stdout(), "error: %s\n\n", err)

		s.PrintHelp(virtOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return callback()
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue = []color.Attribute{color.FgBlue, color.Bold}
)

// ColorPrinter colors output based on the INTECMD_COLOR environment variable
// and whether the session is attached to a terminal.
type ColorPrinter struct {
	virtOS vos.VOS
}

func NewColorPrinter(virtOS vos.VOS) *ColorPrinter {
	return &ColorPrinter{virtOS: virtOS}
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.virtOS.Getenv(vos.EnvColor) {
	case colorNever:
		return false
	case colorAlways:
		return true
	default:
		return c.virtOS.GetPTY().IsPTY
	}
}

// Sprint formats s with the attributes if the output should be colored.
func (c *ColorPrinter) Sprint(attrs []color.Attribute, s string) string {
	if !c.ShouldColor() {
		return s
	}

	// The package level NoColor check is for os.Stdout, not the session.
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(s)
}
