package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decoder unmarshals one config format.
type decoder struct {
	name      string
	unmarshal func([]byte, any) error
}

var (
	yamlDecoder = decoder{"YAML", yaml.Unmarshal}
	tomlDecoder = decoder{"TOML", toml.Unmarshal}
)

func (d decoder) load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := d.unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s from %s: %w", d.name, path, err)
	}
	return nil
}

// LoadYAML loads a YAML file into v.
func LoadYAML(path string, v any) error {
	return yamlDecoder.load(path, v)
}

// LoadFile picks the decoder from the file extension: .toml is TOML,
// everything else is YAML.
func LoadFile(path string, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlDecoder.load(path, v)
	}
	return yamlDecoder.load(path, v)
}

// SaveYAML writes v as YAML, creating the parent directory.
func SaveYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadOrDefault loads a YAML or TOML file on top of the defaults, or returns
// the defaults if the file doesn't exist. Fields missing from the file keep
// their default values.
func LoadOrDefault[T any](path string, defaultFn func() *T) (*T, error) {
	v := defaultFn()
	if !FileExists(path) {
		return v, nil
	}

	if err := LoadFile(path, v); err != nil {
		return nil, err
	}
	return v, nil
}
