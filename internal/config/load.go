package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format string

// Supported config file formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: unsupported config extension (want .yaml, .yml, or .toml)", path)
	}
}

// Find returns the path of the project config file in dir, preferring
// FileName over TOMLFileName. It returns "" if neither exists.
func Find(dir string) string {
	for _, name := range []string{FileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the project config file from dir.
// If no config file exists, it returns a zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	path := Find(dir)
	if path == "" {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path, decoding by extension.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadFile(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := decode(data, format, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Write encodes the config to w in the given format.
func Write(w io.Writer, cfg *Config, format Format) error {
	return encode(w, cfg, format)
}

// LoadRaw reads the config file at path into a generic map so that keys the
// Config struct does not model survive a rewrite. A missing file yields an
// empty map.
func LoadRaw(path string) (map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	var m map[string]any
	if err := decode(data, format, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// WriteFile encodes data to path in the format implied by its extension,
// creating parent directories as needed.
func WriteFile(path string, data map[string]any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := encode(&buf, data, format); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func decode(data []byte, format Format, v any) error {
	if format == FormatTOML {
		_, err := toml.Decode(string(data), v)
		return err
	}
	return yaml.Unmarshal(data, v)
}

func encode(w io.Writer, v any, format Format) error {
	if format == FormatTOML {
		return toml.NewEncoder(w).Encode(v)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(v)
}
