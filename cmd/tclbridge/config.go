package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// configEnv names the variable holding the default input path for load.
const configEnv = "TCLBRIDGE_CONFIG"

// document is the YAML input of the load command.
type document struct {
	Arrays []arraySpec          `yaml:"arrays"`
	Lists  map[string][]string `yaml:"lists"`
}

// arraySpec describes one array variable to populate.
type arraySpec struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace"`
	Elements  map[string]string `yaml:"elements"`
}

// resolveInputPath picks the explicit argument, then $TCLBRIDGE_CONFIG.
// "-" means standard input.
func resolveInputPath(args []string, getenv func(string) string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if envPath := getenv(configEnv); envPath != "" {
		return envPath, nil
	}
	return "", fmt.Errorf("no input file: pass a path or set %s", configEnv)
}

// readDocument reads and decodes the document at path.
func readDocument(path string, stdin io.Reader, getenv func(string) string) (*document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return decodeDocument(interpolateEnv(data, getenv))
}

// decodeDocument parses YAML, rejecting unknown fields.
func decodeDocument(data []byte) (*document, error) {
	doc := &document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *document) validate() error {
	for i, a := range d.Arrays {
		if a.Name == "" {
			return fmt.Errorf("arrays[%d]: name is required", i)
		}
	}
	return nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} references in data.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}
