package vos

import (
	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
)

// ProcessFunc is a command that can be run, it returns the command's status.
type ProcessFunc func(VOS) int

// ProcessResolver looks up a command by name, it returns nil if no command
// was found.
type ProcessResolver func(name string) ProcessFunc

// EventRecorder stores session events.
type EventRecorder interface {
	Record(event logger.LogType) error
}

type PTY struct {
	Width int
	IsPTY bool
}

// VOS is the view of the operating system a single command runs against.
type VOS interface {
	VEnv
	VIO

	// Args holds command line arguments, including the command as Args[0].
	Args() []string

	// Getwd returns the session's current directory.
	Getwd() string
	// WorkingDir returns the session's current directory model, changes to it
	// are visible to every later command in the session.
	WorkingDir() *curdir.CurrentDirectory
	// DirReader returns the reader used to look at directories.
	DirReader() dirreader.Reader

	Hostname() string
	GetPTY() PTY

	// LogInvalidInvocation records that the command rejected its input.
	LogInvalidInvocation(err error)
	// LogDirectoryChange records that the current directory moved.
	LogDirectoryChange(from, to string)

	// StartProcess prepares a command in the same session.
	StartProcess(argv []string, attr *ProcAttr) (*ProcOS, error)
}
