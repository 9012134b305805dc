package vostest

import (
	"bytes"
	"io"

	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
	"github.com/Grusburk/intecmd/core/pathconv"
	"github.com/Grusburk/intecmd/core/vos"
	"github.com/spf13/afero"
)

const (
	// HomeDir is the home directory of the test user, it exists on every
	// test filesystem.
	HomeDir  = "/home/tester"
	User     = "tester"
	Hostname = "testhost"
)

// EventLog collects recorded events in memory.
type EventLog struct {
	Events []logger.LogType
}

func (e *EventLog) Record(event logger.LogType) error {
	e.Events = append(e.Events, event)
	return nil
}

func SingleProcessResolver(process vos.ProcessFunc) vos.ProcessResolver {
	return func(string) vos.ProcessFunc {
		return process
	}
}

// NewMemFs creates an in-memory filesystem containing HomeDir.
func NewMemFs() afero.Fs {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(HomeDir, 0755); err != nil {
		panic(err)
	}
	return fs
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// Dir is the starting directory, HomeDir if empty.
	Dir string
	// If Env is non-empty, it gives the environment variables for the
	// new process in the form returned by Environ.
	Env []string
	// Fs backs the directory reader, NewMemFs() is used if nil.
	Fs afero.Fs
	// Convention defaults to POSIX.
	Convention *pathconv.Convention
	// Reader replaces the filesystem reader if set.
	Reader dirreader.Reader
	PTY    vos.PTY

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int
	// WorkingDir holds the current directory after Run.
	WorkingDir *curdir.CurrentDirectory
	// Events holds everything recorded during Run.
	Events EventLog
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
}

// FS returns the filesystem the command will read, creating it if needed.
func (c *Cmd) FS() afero.Fs {
	if c.Fs == nil {
		c.Fs = NewMemFs()
	}
	return c.Fs
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the command and waits for it to complete.
func (c *Cmd) Run() error {
	conv := c.Convention
	if conv == nil {
		conv = pathconv.Posix
	}

	dir := c.Dir
	if dir == "" {
		dir = HomeDir
	}

	wd, err := curdir.New(conv, dir)
	if err != nil {
		return err
	}

	reader := c.Reader
	if reader == nil {
		reader = dirreader.NewFsReader(c.FS(), conv)
	}

	c.Events = EventLog{}
	session, err := vos.NewSession(vos.SessionConfig{
		Dir:      wd,
		Reader:   reader,
		Resolver: SingleProcessResolver(c.Process),
		Events:   &c.Events,
		Hostname: Hostname,
		User:     User,
		PTY:      c.PTY,
	})
	if err != nil {
		return err
	}

	env := c.Env
	if env == nil {
		env = []string{vos.EnvHome + "=" + HomeDir, vos.EnvUser + "=" + User}
	}

	login := session.LoginProc(env, nil)
	proc, err := login.StartProcess(c.Argv, &vos.ProcAttr{
		Files: vos.NewVIOFromWriters(c.Stdin, c.Stdout, c.Stderr),
	})
	if err != nil {
		return err
	}

	c.ExitStatus = proc.Run()
	c.WorkingDir = wd
	return nil
}
