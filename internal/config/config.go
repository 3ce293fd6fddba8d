// Package config loads geoconv settings from a YAML file, a .env file and
// GEOCONV_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fsevo/geoconv/internal/convert"
)

// DefaultPath is read when no config file is named and it exists in the
// working directory.
const DefaultPath = "geoconv.yaml"

// Environment variables that override file values.
const (
	EnvConfig       = "GEOCONV_CONFIG"
	EnvLogFile      = "GEOCONV_LOG_FILE"
	EnvMeterDigits  = "GEOCONV_METER_DIGITS"
	EnvDegreeDigits = "GEOCONV_DEGREE_DIGITS"
	EnvConcurrency  = "GEOCONV_CONCURRENCY"
)

// maxDigits bounds the printed precision; float64 carries ~15-17 significant digits.
const maxDigits = 15

type Config struct {
	Output OutputConfig `yaml:"output"`
	Batch  BatchConfig  `yaml:"batch"`
	Log    LogConfig    `yaml:"log"`

	// Path of the file the values were read from, empty for defaults only.
	Path string `yaml:"-"`
}

type OutputConfig struct {
	MeterDigits  int    `yaml:"meter_digits"`
	DegreeDigits int    `yaml:"degree_digits"`
	Format       string `yaml:"format"` // batch output: table, csv or geojson
}

type BatchConfig struct {
	Concurrency int  `yaml:"concurrency"`
	Progress    bool `yaml:"progress"`
}

// LogConfig selects the log destination. An empty File logs to stderr;
// otherwise the file is rotated by size.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
	Verbose    bool   `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output: OutputConfig{
			MeterDigits:  convert.DefaultFormatter.MeterDigits,
			DegreeDigits: convert.DefaultFormatter.DegreeDigits,
			Format:       "table",
		},
		Batch: BatchConfig{
			Concurrency: runtime.NumCPU(),
		},
		Log: LogConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Formatter returns the output formatter for the configured precision.
func (c Config) Formatter() convert.Formatter {
	return convert.Formatter{MeterDigits: c.Output.MeterDigits, DegreeDigits: c.Output.DegreeDigits}
}

// LoadEnv reads KEY=VALUE files into the process environment. Variables that
// are already set keep their value. With no arguments ".env" is read; a
// missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file, then
// environment overrides. path may be empty, in which case $GEOCONV_CONFIG
// and then DefaultPath are tried. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfig); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.Path = path
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.Log.File = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMeterDigits, &cfg.Output.MeterDigits},
		{EnvDegreeDigits, &cfg.Output.DegreeDigits},
		{EnvConcurrency, &cfg.Batch.Concurrency},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: not an integer", e.name, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks ranges that the rest of the program relies on.
func (c Config) Validate() error {
	if c.Output.MeterDigits < 0 || c.Output.MeterDigits > maxDigits {
		return fmt.Errorf("output.meter_digits %d outside [0, %d]", c.Output.MeterDigits, maxDigits)
	}
	if c.Output.DegreeDigits < 0 || c.Output.DegreeDigits > maxDigits {
		return fmt.Errorf("output.degree_digits %d outside [0, %d]", c.Output.DegreeDigits, maxDigits)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	return nil
}
