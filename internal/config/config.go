// Package config loads the optional settings file shared by the backup and
// restore commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v3"

	"github.com/studio1767/s3tree/internal/mirror"
	"github.com/studio1767/s3tree/internal/ops"
	"github.com/studio1767/s3tree/internal/s3io"
)

type ErrInvalid struct {
	path string
	msg  string
}

func (e *ErrInvalid) Error() string {
	if e.path == "" {
		return fmt.Sprintf("invalid configuration: %s", e.msg)
	}
	return fmt.Sprintf("invalid configuration in %s: %s", e.path, e.msg)
}

type Config struct {
	Path string `yaml:"-"`

	Profile   string `yaml:"profile"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	Workers      int    `yaml:"workers"`
	CreateBucket bool   `yaml:"create_bucket"`
	Timeout      string `yaml:"timeout"`

	SkipDirs     []string `yaml:"skip_dirs"`
	SkipDirItems []string `yaml:"skip_dir_items"`

	IncludeExtensions []string `yaml:"include_extensions"`
	ExcludeExtensions []string `yaml:"exclude_extensions"`
}

// DefaultPath is where Load looks when no file is named.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".s3tree", "config.yml")
}

// Load reads the settings from path. With an empty path the default
// location is tried and a missing file there just means defaults; a file
// that was asked for by name has to exist.
func Load(path string) (*Config, error) {
	required := true
	if path == "" {
		path = DefaultPath()
		required = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			cfg := defaults()
			return &cfg, nil
		}
		return nil, err
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		var invalid *ErrInvalid
		if errors.As(err, &invalid) {
			invalid.path = path
			return nil, invalid
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

// Parse decodes settings from r on top of the defaults and validates them.
func Parse(r io.Reader) (*Config, error) {
	cfg := defaults()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err := decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Workers: mirror.DefaultWorkers,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Workers < 1 {
		return &ErrInvalid{
			msg: fmt.Sprintf("workers must be at least 1, got %d", cfg.Workers),
		}
	}
	if _, err := cfg.TimeoutDuration(); err != nil {
		return err
	}
	if cfg.AccessKey != "" && cfg.SecretKey == "" {
		return &ErrInvalid{
			msg: "access_key is set without secret_key",
		}
	}

	return nil
}

// TimeoutDuration is zero when no timeout is configured.
func (cfg *Config) TimeoutDuration() (time.Duration, error) {
	if cfg.Timeout == "" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout < 0 {
		return 0, &ErrInvalid{
			msg: fmt.Sprintf("bad timeout %q", cfg.Timeout),
		}
	}
	return timeout, nil
}

func (cfg *Config) ClientOptions() s3io.Options {
	return s3io.Options{
		Profile:   cfg.Profile,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	}
}

func (cfg *Config) MirrorOptions(log logrus.FieldLogger) mirror.Options {
	return mirror.Options{
		Workers:      cfg.Workers,
		CreateBucket: cfg.CreateBucket,
		Scan: ops.ScanOptions{
			SkipDirs:     cfg.SkipDirs,
			SkipDirItems: cfg.SkipDirItems,
		},
		IncludeExtensions: cfg.IncludeExtensions,
		ExcludeExtensions: cfg.ExcludeExtensions,
		Log:               log,
	}
}
