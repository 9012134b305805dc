package cmd

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/Grusburk/intecmd/commands"
	"github.com/Grusburk/intecmd/core/config"
	"github.com/Grusburk/intecmd/core/curdir"
	"github.com/Grusburk/intecmd/core/dirreader"
	"github.com/Grusburk/intecmd/core/logger"
	"github.com/Grusburk/intecmd/core/shell"
	"github.com/Grusburk/intecmd/core/vos"
)

type sessionIO struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	pty    vos.PTY
}

// localSession is a shell session over the local filesystem.
type localSession struct {
	Login   *vos.ProcOS
	Options shell.Options

	logFd io.Closer
}

func (l *localSession) Close() error {
	return l.logFd.Close()
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv(vos.EnvUser)
}

func newLocalSession(cfg *config.Configuration, streams sessionIO) (*localSession, error) {
	conv, err := cfg.PathConvention()
	if err != nil {
		return nil, err
	}

	home, err := cfg.HomeDir()
	if err != nil {
		return nil, err
	}

	dir, err := curdir.New(conv, home)
	if err != nil {
		return nil, fmt.Errorf("home directory: %w", err)
	}

	logFd, err := cfg.OpenAppLog()
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	username := currentUser()

	session, err := vos.NewSession(vos.SessionConfig{
		Dir:      dir,
		Reader:   dirreader.NewOsReader(conv),
		Resolver: commands.BuiltinProcessResolver,
		Events:   logger.NewJsonLinesLogRecorder(logFd).NewSession(),
		Hostname: hostname,
		User:     username,
		PTY:      streams.pty,
	})
	if err != nil {
		logFd.Close()
		return nil, err
	}

	env := vos.NewMapEnvFromEnvList(os.Environ())
	env.Setenv(vos.EnvHome, dir.String())
	env.Setenv(vos.EnvUser, username)
	env.Setenv(vos.EnvColor, cfg.Color)

	login := session.LoginProc(env.Environ(), vos.NewVIOFromWriters(streams.stdin, streams.stdout, streams.stderr))

	return &localSession{
		Login: login,
		Options: shell.Options{
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryPath(),
			Commands:    commands.ListBuiltinCommands,
		},
		logFd: logFd,
	}, nil
}
