package fileconf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a supported configuration file format
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by the file extension of name
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", goerr.New("unsupported config file extension", goerr.V("name", name))
	}
}

// Decode unmarshals data into v using the format implied by name
func Decode(name string, data []byte, v any) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(err, "failed to decode TOML", goerr.V("name", name))
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(err, "failed to decode YAML", goerr.V("name", name))
		}
	}
	return nil
}

// DecodeFile reads path and decodes it into v
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	return Decode(path, data, v)
}
