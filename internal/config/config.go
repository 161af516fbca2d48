// Package config handles configuration loading and validation.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	DocumentName  string  `yaml:"document_name,omitempty" json:"document_name,omitempty"`
	Preview       Preview `yaml:"preview" json:"preview"`
	KML           KML     `yaml:"kml" json:"kml"`
	Server        Server  `yaml:"server" json:"server"`
	DefaultHeight float64 `yaml:"default_height" json:"default_height" validate:"gte=0"`
}

// Preview configures raster previews.
type Preview struct {
	Background string  `yaml:"background,omitempty" json:"background,omitempty" validate:"omitempty,hexcolor"`
	Size       int     `yaml:"size" json:"size" validate:"gte=16,lte=8192"`
	Quality    float32 `yaml:"quality" json:"quality" validate:"gte=0,lte=100"`
	Lossless   bool    `yaml:"lossless,omitempty" json:"lossless,omitempty"`
}

// KML configures KML export.
type KML struct {
	Minify bool `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Server configures the HTTP conversion service.
type Server struct {
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DocumentName:  "Buildings",
		DefaultHeight: 10,
		Preview: Preview{
			Background: "#ffffff",
			Size:       1024,
			Quality:    85,
		},
		Server: Server{
			MaxBodyBytes: 32 << 20,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", path)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
