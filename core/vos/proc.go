package vos

import (
	"fmt"

	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
)

// ProcOS is the VOS of a single command.
type ProcOS struct {
	session *Session

	VEnv
	VIO

	// ProcArgs holds command line arguments, including the command as Args[0].
	ProcArgs []string
}

var _ VOS = (*ProcOS)(nil)

// Args implements VOS.Args.
func (p *ProcOS) Args() []string {
	return p.ProcArgs
}

// Getwd implements VOS.Getwd.
func (p *ProcOS) Getwd() string {
	return p.session.dir.String()
}

// WorkingDir implements VOS.WorkingDir.
func (p *ProcOS) WorkingDir() *curdir.CurrentDirectory {
	return p.session.dir
}

// DirReader implements VOS.DirReader.
func (p *ProcOS) DirReader() dirreader.Reader {
	return p.session.reader
}

// Hostname implements VOS.Hostname.
func (p *ProcOS) Hostname() string {
	return p.session.hostname
}

// GetPTY implements VOS.GetPTY.
func (p *ProcOS) GetPTY() PTY {
	return p.session.pty
}

// User returns the name of the user running the session.
func (p *ProcOS) User() string {
	return p.session.user
}

// LogInvalidInvocation implements VOS.LogInvalidInvocation.
func (p *ProcOS) LogInvalidInvocation(err error) {
	p.session.Record(&logger.InvalidInvocation{
		Command: p.ProcArgs,
		Error:   err.Error(),
	})
}

// LogDirectoryChange implements VOS.LogDirectoryChange.
func (p *ProcOS) LogDirectoryChange(from, to string) {
	p.session.Record(&logger.DirectoryChanged{From: from, To: to})
}

// Record logs an arbitrary session event.
func (p *ProcOS) Record(event logger.LogType) {
	p.session.Record(event)
}

type ProcAttr struct {
	// If Env is non-nil, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	// Files specifies the streams of the new process, nil discards output.
	Files VIO
}

// StartProcess implements VOS.StartProcess.
func (p *ProcOS) StartProcess(argv []string, attr *ProcAttr) (*ProcOS, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("start process: no command")
	}
	if attr == nil {
		attr = &ProcAttr{}
	}

	env := attr.Env
	if env == nil {
		env = p.Environ()
	}

	files := attr.Files
	if files == nil {
		files = NewNullIO()
	}

	return &ProcOS{
		session:  p.session,
		VEnv:     NewMapEnvFromEnvList(env),
		VIO:      files,
		ProcArgs: argv,
	}, nil
}

// Run resolves the command named by Args[0] and runs it. Unknown commands
// print a message and return 127.
func (p *ProcOS) Run() int {
	proc := p.session.resolver(p.ProcArgs[0])
	if proc == nil {
		fmt.Fprintf(p.Stdout(), "%s: command not found\n", p.ProcArgs[0])
		p.session.Record(&logger.UnknownCommand{Command: p.ProcArgs})
		return 127
	}

	status := proc(p)
	p.session.Record(&logger.RunCommand{Command: p.ProcArgs, Status: status})
	return status
}
