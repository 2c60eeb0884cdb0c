package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the configuration at path on top of the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse("<reader>", data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos don't silently fall back to defaults.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, newParseError(source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// newParseError converts go-toml errors, keeping the position when known.
func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		pe.Line, pe.Column = decodeErr.Position()
		return pe
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown setting " + keyString(first.Key())
	}
	return pe
}

func keyString(key toml.Key) string {
	var b bytes.Buffer
	for i, part := range key {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "holdrec", "config.toml")
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
