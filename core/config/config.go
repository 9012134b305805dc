package config

import (
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Grusburk/intecmd/core/pathconv"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	EnvFileName       = ".env"

	// EnvConvention overrides the convention setting.
	EnvConvention = "INTECMD_CONVENTION"
	// EnvHome overrides the home setting.
	EnvHome = "INTECMD_HOME"
)

type Configuration struct {
	// configDir is empty when running on the built-in defaults.
	configDir string
	configFs  afero.Fs

	Convention  string `json:"convention" validate:"oneof=auto posix windows"`
	Home        string `json:"home"`
	Prompt      string `json:"prompt" validate:"required"`
	Color       string `json:"color" validate:"oneof=always auto never"`
	HistoryFile string `json:"history_file"`
	LogFile     string `json:"log_file"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Home != "" {
		conv, err := c.PathConvention()
		if err != nil {
			return err
		}
		if _, err := conv.Validate(c.Home); err != nil {
			return err
		}
	}
	return nil
}

// PathConvention returns the convention the shell's paths follow.
func (c *Configuration) PathConvention() (*pathconv.Convention, error) {
	return pathconv.ByName(c.Convention)
}

// HomeDir returns the configured home directory, falling back to the home of
// the user running the process.
func (c *Configuration) HomeDir() (string, error) {
	if c.Home != "" {
		return c.Home, nil
	}
	return os.UserHomeDir()
}

// IsDefault is true if the configuration wasn't loaded from disk.
func (c *Configuration) IsDefault() bool {
	return c.configFs == nil
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenAppLog opens the event log in an append only state. The built-in
// configuration and an empty log_file discard events.
func (c *Configuration) OpenAppLog() (io.WriteCloser, error) {
	if c.IsDefault() || c.LogFile == "" {
		return nopWriteCloser{io.Discard}, nil
	}
	return c.fs().OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log for reading.
func (c *Configuration) ReadAppLog() (io.ReadCloser, error) {
	if c.IsDefault() || c.LogFile == "" {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(c.LogFile, os.O_RDONLY, 0600)
}

// HistoryPath returns the OS path of the line history file, or an empty string
// if history isn't persisted.
func (c *Configuration) HistoryPath() string {
	if c.IsDefault() || c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.configDir, c.HistoryFile)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// DefaultYAML returns a copy of the built-in config.yaml.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigData...)
}

// Default returns the built-in configuration with overrides from the process
// environment applied.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.applyOverrides(os.LookupEnv)
	return cfg
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
