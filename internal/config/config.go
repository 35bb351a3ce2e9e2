package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	printers "github.com/sanix-darker/purr/internal/printers"
)

const (
	// ConfigDirName is the purr config directory under $HOME.
	ConfigDirName = ".config/purr"
	// ConfigFileName is the config file inside ConfigDirName.
	ConfigFileName = "config.yml"
)

// Config carries the whole cli's dependencies. One value is built at the
// entry point and handed to every command constructor; there is no ambient
// global configuration state.
type Config struct {
	Version        string
	Viper          *Store
	ConfigDirPath  string
	ConfigFilePath string
	Debug          bool
	Provider       string
	Model          string
	GithubToken    string
	Printers       printers.IPrinters

	// io writers, useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a new default config, loading the config file
// when it exists.
func NewDefaultConfig() Config {
	conf := Config{
		Printers:       printers.NewPrinters(),
		ConfigDirPath:  ConfigDirName,
		ConfigFilePath: ConfigFileName,
		Debug:          false,
		Provider:       "",
		Model:          "auto",
		InReader:       os.Stdin,
		OutWriter:      os.Stdout,
		ErrWriter:      os.Stderr,
	}

	conf.Viper = setupStore(conf)
	return conf
}

func setupStore(conf Config) *Store {
	s := NewStore()

	cfgFile, err := GetConfigFilePath(conf)
	if err != nil {
		return s
	}

	if err := s.LoadYAMLFile(cfgFile); err != nil {
		// Config file not found is OK, we use defaults
		return s
	}

	return s
}

// GetConfigFilePath returns the store file path from config.
func GetConfigFilePath(conf Config) (string, error) {
	dir, err := GetConfigDirPath(conf)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, conf.ConfigFilePath), nil
}

// GetConfigDirPath returns the path of the purr config folder.
func GetConfigDirPath(conf Config) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to read home directory: %s", err)
	}
	return filepath.Join(home, conf.ConfigDirPath), nil
}
