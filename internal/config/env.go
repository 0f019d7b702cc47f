package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings read from the process environment.
type Env struct {
	// ConfigRoot is the directory holding ChatConfig.json.
	ConfigRoot string `env:"WIKIA_CONFIG_ROOT" envDefault:"."`
	// LogLevel is used when no level is given on the command line.
	LogLevel string `env:"CHAT_LOG_LEVEL"`
}

// LoadEnv parses Env from the environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: reading environment: %w", err)
	}
	e.LogLevel = strings.ToLower(e.LogLevel)
	return e, nil
}

// ConfigPath returns the path of the configuration document.
func (e Env) ConfigPath() string {
	root := e.ConfigRoot
	if root == "" {
		root = "."
	}
	return filepath.Join(root, FileName)
}

// ResolvePath returns the configuration document path, honouring
// WIKIA_CONFIG_ROOT.
func ResolvePath() (string, error) {
	e, err := LoadEnv()
	if err != nil {
		return "", err
	}
	return e.ConfigPath(), nil
}
