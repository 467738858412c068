// Package config provides the define configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked up in the working directory.
const DefaultFilename = "define.yaml"

// FileLoader implements ports.ConfigLoader using a YAML file.
type FileLoader struct {
	Filename string
}

var _ ports.ConfigLoader = (*FileLoader)(nil)

// Load reads the configuration from the given working directory.
func (l *FileLoader) Load(cwd string) (map[string]any, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	return Load(filepath.Join(cwd, filename))
}

// Load reads a configuration file from the given path and returns the
// definition tree.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var definefile Definefile
	if err := yaml.Unmarshal(data, &definefile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if len(definefile.Define) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoDefinitions, "failed to load definitions"), "path", path)
	}

	return definefile.Define, nil
}
