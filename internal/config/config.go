// Package config handles TOML configuration loading with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for media-shelf.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Minio   MinioConfig   `toml:"minio"`
	Library LibraryConfig `toml:"library"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// MinioConfig points at the object store holding the media library.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	// Secure forces TLS on or off. Unset means guess from the endpoint.
	Secure *bool `toml:"secure"`
}

// LibraryConfig controls how the bucket is browsed.
type LibraryConfig struct {
	PageSize int    `toml:"page_size"`
	Prefix   string `toml:"prefix"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Minio: MinioConfig{
			Endpoint: "play.min.io:9000",
			Bucket:   "media",
		},
		Library: LibraryConfig{
			PageSize: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "media-shelf", "config.toml")
}

// Load reads configuration from the given path, falling back to defaults
// for any unset fields. If the file does not exist, returns defaults.
// Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MINIO_ENDPOINT":   &c.Minio.Endpoint,
		"MINIO_ACCESS_KEY": &c.Minio.AccessKey,
		"MINIO_SECRET_KEY": &c.Minio.SecretKey,
		"MEDIA_BUCKET":     &c.Minio.Bucket,
		"MEDIA_SHELF_ADDR": &c.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MINIO_SECURE"); ok && v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MINIO_SECURE: %w", err)
		}
		c.Minio.Secure = &secure
	}
	return nil
}

// Validate reports configuration that cannot serve a library.
func (c *Config) Validate() error {
	var errs []error
	if c.Minio.Endpoint == "" {
		errs = append(errs, errors.New("minio.endpoint is required"))
	}
	if c.Minio.Bucket == "" {
		errs = append(errs, errors.New("minio.bucket is required"))
	}
	if c.Library.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("library.page_size must be positive, got %d", c.Library.PageSize))
	}
	return errors.Join(errs...)
}
