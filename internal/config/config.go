// Package config loads the optional YAML run configuration.
//
// The config file pins package patterns and the output file name so that
// go:generate lines can stay flag-free. It configures the tool run only;
// the fromgen directive itself recognizes no options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is where the CLI looks when no -config flag is given.
	DefaultFileName = "fromgen.yaml"
	// DefaultOutputName is the generated file name.
	DefaultOutputName = "fromgen_gen.go"
)

// File is the parsed run configuration. Command-line flags take precedence
// over values loaded from it.
type File struct {
	Version  string   `yaml:"version"`
	Packages []string `yaml:"packages"`
	Output   string   `yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if len(f.Packages) == 0 {
		f.Packages = []string{"./..."}
	}

	if f.Output == "" {
		f.Output = DefaultOutputName
	}
}
