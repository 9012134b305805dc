package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	cfg, err := LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path), os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.configDir = path
	return cfg, nil
}

// LoadFs loads the configuration from the root of configFs.
//
// Settings in config.yaml are overridden by a .env file next to it, which is
// in turn overridden by lookupEnv.
func LoadFs(configFs afero.Fs, lookupEnv func(string) (string, bool)) (*Configuration, error) {
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	out.configFs = configFs

	dotenv, err := readEnvFile(configFs)
	if err != nil {
		return nil, err
	}
	out.applyOverrides(func(key string) (string, bool) {
		if lookupEnv != nil {
			if val, ok := lookupEnv(key); ok {
				return val, true
			}
		}
		val, ok := dotenv[key]
		return val, ok
	})

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &out, nil
}

func readEnvFile(configFs afero.Fs) (map[string]string, error) {
	fd, err := configFs.Open(EnvFileName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}
	defer fd.Close()

	env, err := godotenv.Parse(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvFileName, err)
	}
	return env, nil
}

func (c *Configuration) applyOverrides(lookup func(string) (string, bool)) {
	if val, ok := lookup(EnvConvention); ok && val != "" {
		c.Convention = val
	}
	if val, ok := lookup(EnvHome); ok && val != "" {
		c.Home = val
	}
}

// Initialize writes the default configuration to dir if it doesn't already
// have one and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := os.Stat(configPath); {
	case err == nil:
		logger.Printf("Config already exists: %s\n", configPath)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("Writing default config: %s\n", configPath)
		if err := os.WriteFile(configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return Load(dir)
}
