package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the deployment configuration document.
const FileName = "ChatConfig.json"

// LoadError reports a configuration file that is missing or cannot be parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if os.IsNotExist(e.Err) {
		return fmt.Sprintf("config: could not find config file %q", e.Path)
	}
	return fmt.Sprintf("config: could not load config file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and parses the deployment configuration table at path.
// The document is JSON, which the YAML decoder reads as-is.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes a configuration document. path is only used in errors.
func Parse(path string, data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to parse config: %w", err)}
	}
	if t.Modes == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("empty config document")}
	}
	return &t, nil
}
