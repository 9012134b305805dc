package vos

import (
	"fmt"

	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
)

// Session is the state shared by every command a single shell runs: one
// current directory, one directory reader and one event log.
type Session struct {
	dir      *curdir.CurrentDirectory
	reader   dirreader.Reader
	resolver ProcessResolver
	events   EventRecorder
	hostname string
	user     string
	pty      PTY
}

// SessionConfig holds the collaborators of a Session.
type SessionConfig struct {
	Dir      *curdir.CurrentDirectory
	Reader   dirreader.Reader
	Resolver ProcessResolver
	// Events is optional, events are dropped if it's nil.
	Events   EventRecorder
	Hostname string
	User     string
	PTY      PTY
}

func NewSession(cfg SessionConfig) (*Session, error) {
	switch {
	case cfg.Dir == nil:
		return nil, fmt.Errorf("session: no current directory")
	case cfg.Reader == nil:
		return nil, fmt.Errorf("session: no directory reader")
	case cfg.Resolver == nil:
		return nil, fmt.Errorf("session: no process resolver")
	}

	events := cfg.Events
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}

	return &Session{
		dir:      cfg.Dir,
		reader:   cfg.Reader,
		resolver: cfg.Resolver,
		events:   events,
		hostname: cfg.Hostname,
		user:     cfg.User,
		pty:      cfg.PTY,
	}, nil
}

// LoginProc creates the first process of the session, its environment is
// copied by every process it starts.
func (s *Session) LoginProc(env []string, files VIO) *ProcOS {
	if files == nil {
		files = NewNullIO()
	}

	return &ProcOS{
		session:  s,
		VEnv:     NewMapEnvFromEnvList(env),
		VIO:      files,
		ProcArgs: []string{"-sh"},
	}
}

// SetPTY updates the terminal information.
func (s *Session) SetPTY(pty PTY) {
	s.pty = pty
}

// Record logs an event, failures to log are ignored.
func (s *Session) Record(event logger.LogType) {
	_ = s.events.Record(event)
}
