// Package shell reads lines, splits them into arguments and runs the matching
// builtin or command in a single session.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Grusburk/intecmd/core/logger"
	"github.com/Grusburk/intecmd/core/vos"
	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
)

const (
	DefaultPrompt = `\u@\h:\w\$ `

	// StatusSyntaxError is the status of a line that can't be tokenized.
	StatusSyntaxError = 2
)

// ErrUnterminatedQuote is reported for lines with an open quote.
var ErrUnterminatedQuote = errors.New("syntax error: unterminated quoted string")

// Options configures a Shell.
type Options struct {
	// Prompt is the prompt template, DefaultPrompt if empty.
	Prompt string
	// HistoryFile persists interactive history, empty keeps it in memory.
	HistoryFile string
	// Commands lists the names of the runnable commands for help and
	// completion.
	Commands func() []string
}

type Shell struct {
	VirtualOS *vos.ProcOS
	Readline  *readline.Instance

	prompt   string
	commands func() []string

	lastRet  int
	history  []string
	exitCode int

	// Set to true to quit the shell
	Quit bool
}

// New creates a shell that runs commands as children of login.
func New(login *vos.ProcOS, opts Options) *Shell {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	commands := opts.Commands
	if commands == nil {
		commands = func() []string { return nil }
	}

	return &Shell{
		VirtualOS: login,
		prompt:    prompt,
		commands:  commands,
	}
}

// NewInteractive creates a shell with line editing on the login's streams.
func NewInteractive(login *vos.ProcOS, opts Options) (*Shell, error) {
	s := New(login, opts)

	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(login.Stdin()),
		Stdout:      login.Stdout(),
		Stderr:      login.Stderr(),
		HistoryFile: opts.HistoryFile,
		AutoComplete: readline.NewPrefixCompleter(
			s.completions()...,
		),
		FuncGetWidth: func() int {
			return login.GetPTY().Width
		},
		FuncIsTerminal: func() bool {
			return login.GetPTY().IsPTY
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	s.Readline = rl

	return s, nil
}

func (s *Shell) completions() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, name := range s.commands() {
		items = append(items, readline.PcItem(name))
	}
	for _, name := range ListBuiltins() {
		items = append(items, readline.PcItem(name))
	}
	return items
}

// Close releases the line editor.
func (s *Shell) Close() error {
	if s.Readline == nil {
		return nil
	}
	return s.Readline.Close()
}

// LastStatus returns the status of the last line that was run.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

// History returns the lines entered so far, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

func (s *Shell) stdout() io.Writer {
	if s.Readline != nil {
		return s.Readline
	}
	return s.VirtualOS.Stdout()
}

func (s *Shell) start() {
	home, _ := s.VirtualOS.UserHomeDir()
	s.VirtualOS.Record(&logger.SessionStart{
		User:       s.VirtualOS.User(),
		Home:       home,
		Directory:  s.VirtualOS.Getwd(),
		Convention: s.VirtualOS.WorkingDir().Convention().Name,
		IsPty:      s.VirtualOS.GetPTY().IsPTY,
	})
}

func (s *Shell) end(code int) int {
	s.VirtualOS.Record(&logger.SessionEnd{ExitCode: code})
	return code
}

// RunLines runs each line in order until one of them exits the shell. It
// returns the exit code of the shell, which is only non-zero if set by exit.
func (s *Shell) RunLines(lines []string) int {
	s.start()
	s.exitCode = 0
	for _, line := range lines {
		if s.Quit {
			break
		}
		s.addHistory(line)
		s.RunCommand(line)
	}
	return s.end(s.exitCode)
}

// RunInteractive reads lines until the input closes or the user exits.
func (s *Shell) RunInteractive() int {
	if s.Readline == nil {
		return s.end(1)
	}

	s.start()
	for !s.Quit {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.end(s.exitCode) // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue // empty line

		default:
			s.addHistory(line)
			s.RunCommand(line)
		}
	}

	return s.end(s.exitCode)
}

func (s *Shell) addHistory(line string) {
	if strings.TrimSpace(line) != "" {
		s.history = append(s.history, line)
	}
}

// RunCommand expands variables in a single line, splits it into words and
// runs it.
func (s *Shell) RunCommand(line string) {
	tokens, err := shlex.Split(expandLine(line, s.cmdEnv().Getenv), true)
	if err != nil {
		s.VirtualOS.LogInvalidInvocation(fmt.Errorf("%w: %s", ErrUnterminatedQuote, line))
		fmt.Fprintf(s.stdout(), "intecmd: %v\n", ErrUnterminatedQuote)
		s.lastRet = StatusSyntaxError
		return
	}

	if len(tokens) == 0 {
		return
	}

	s.execute(tokens)
}

// cmdEnv returns a copy of the environment with the shell's special variables
// set for expansion.
func (s *Shell) cmdEnv() vos.VEnv {
	mapEnv := vos.NewMapEnvFromEnvList(s.VirtualOS.Environ())
	mapEnv.Setenv("?", fmt.Sprintf("%d", uint8(s.lastRet)))
	mapEnv.Setenv("PWD", s.VirtualOS.Getwd())
	return mapEnv
}

func (s *Shell) execute(args []string) {
	// Execute builtins
	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.lastRet = builtin(s, args)
		return
	}

	// Execute program
	proc, err := s.VirtualOS.StartProcess(args, &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	})
	if err != nil {
		fmt.Fprintf(s.stdout(), "intecmd: %s\n", err)
		s.lastRet = 1
		return
	}

	s.lastRet = proc.Run()
}

// Prompt expands the prompt template.
//
//	\u  user name
//	\h  host name
//	\w  current directory with the home directory replaced by ~
//	\$  # for root, $ otherwise
func (s *Shell) Prompt() string {
	user := s.VirtualOS.User()

	prompt := s.prompt
	prompt = strings.ReplaceAll(prompt, `\u`, user)
	prompt = strings.ReplaceAll(prompt, `\h`, s.VirtualOS.Hostname())
	prompt = strings.ReplaceAll(prompt, `\w`, s.displayDir())

	if user == "root" {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

func (s *Shell) displayDir() string {
	pwd := s.VirtualOS.Getwd()
	home, err := s.VirtualOS.UserHomeDir()
	if err != nil || home == "" {
		return pwd
	}

	sep := s.VirtualOS.WorkingDir().Convention().Separator
	switch {
	case pwd == home:
		return "~"
	case strings.HasPrefix(pwd, strings.TrimSuffix(home, sep)+sep):
		return "~" + strings.TrimPrefix(pwd, strings.TrimSuffix(home, sep))
	default:
		return pwd
	}
}
