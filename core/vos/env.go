package vos

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

const (
	EnvHome = "HOME"
	EnvUser = "USER"
	// EnvColor overrides the color setting for commands: always, auto or never.
	EnvColor = "INTECMD_COLOR"
)

// ErrNoHome is returned by UserHomeDir if HOME isn't set.
var ErrNoHome = errors.New("HOME not set")

// VEnv represents a virtual environment.
type VEnv interface {
	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// Setenv sets the value of the environment variable named by the key.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	Getenv(key string) string

	// ExpandEnv replaces ${var} or $var in the string according to the values of
	// the current environment variables.
	ExpandEnv(s string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// CopyEnv copies KEY=VALUE pairs into dst.
func CopyEnv(dst VEnv, src []string) error {
	for _, e := range src {
		key, value := splitEnv(e)
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

func splitEnv(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates a new environment from KEY=VALUE pairs.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}
	// Ignore error, it will never be set for MapEnv.
	_ = CopyEnv(out, environ)
	return out
}

// MapEnv implements an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// UserHomeDir implements VEnv.UserHomeDir.
func (m *MapEnv) UserHomeDir() (string, error) {
	home, ok := m.LookupEnv(EnvHome)
	if !ok || home == "" {
		return "", ErrNoHome
	}
	return home, nil
}

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	if key == "" {
		return fmt.Errorf("setenv: invalid key %q", key)
	}

	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// ExpandEnv implements VEnv.ExpandEnv.
func (m *MapEnv) ExpandEnv(s string) string {
	return os.Expand(s, m.Getenv)
}

// Environ implements VEnv.Environ, the result is sorted by key.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}
