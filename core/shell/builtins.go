package shell

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pborman/getopt/v2"
)

// BuiltinFunc runs inside the shell rather than as a separate command.
type BuiltinFunc func(s *Shell, args []string) int

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = map[string]BuiltinFunc{}

func init() {
	AllBuiltins["exit"] = Exit
	AllBuiltins["help"] = Help
	AllBuiltins["history"] = History
}

// ListBuiltins returns the builtin names in order.
func ListBuiltins() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exit quits the shell with the given status or the status of the last
// command.
func Exit(s *Shell, args []string) int {
	w := s.stdout()
	s.Quit = true

	switch len(args) {
	case 1:
		s.exitCode = s.lastRet
	case 2:
		code, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(w, "exit: %s: numeric argument required\n", args[1])
			s.exitCode = 2
			return s.exitCode
		}
		s.exitCode = code
	default:
		fmt.Fprintln(w, "exit: too many arguments")
		s.Quit = false
		return 1
	}

	return s.exitCode
}

// Help lists what the shell can run.
func Help(s *Shell, args []string) int {
	w := s.stdout()
	fmt.Fprintln(w, "Shell builtins:")
	for _, name := range ListBuiltins() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range s.commands() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run a command with -help or --help for details.")
	return 0
}

// History prints or clears the lines entered in this session.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clearOpt := opts.Bool('c', "clear the history list")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	w := s.stdout()
	if err := opts.Getopt(args, nil); err != nil {
		s.VirtualOS.LogInvalidInvocation(err)
		fmt.Fprintf(w, "history: %v\n", err)
		fmt.Fprintln(w, "usage: history [-c]")
		return 2
	}

	switch {
	case *helpOpt:
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display or clear the history list.")
		opts.PrintOptions(w)
	case *clearOpt:
		s.history = nil
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
	default:
		for i, line := range s.history {
			fmt.Fprintf(w, "%5d  %s\n", i+1, line)
		}
	}
	return 0
}
