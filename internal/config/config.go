// Package config loads excelpanel settings from defaults, an optional YAML
// file, .env files, EXCELPANEL_* environment variables and bound flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "EXCELPANEL"

type Config struct {
	API        APIConfig        `mapstructure:"api"        yaml:"api"`
	Log        LogConfig        `mapstructure:"log"        yaml:"log"`
	Pagination PaginationConfig `mapstructure:"pagination" yaml:"pagination"`
	Export     ExportConfig     `mapstructure:"export"     yaml:"export"`
	Upload     UploadConfig     `mapstructure:"upload"     yaml:"upload"`
}

type APIConfig struct {
	// URL overrides hostname based resolution when set.
	URL      string        `mapstructure:"url"      yaml:"url"`
	Hostname string        `mapstructure:"hostname" yaml:"hostname"`
	Timeout  time.Duration `mapstructure:"timeout"  yaml:"timeout"`
}

type LogConfig struct {
	Level    string         `mapstructure:"level"    yaml:"level"`
	File     string         `mapstructure:"file"     yaml:"file"`
	JSON     bool           `mapstructure:"json"     yaml:"json"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

type PaginationConfig struct {
	DefaultSize int `mapstructure:"default_size" yaml:"default_size"`
}

type ExportConfig struct {
	Dir  string `mapstructure:"dir"  yaml:"dir"`
	Size int    `mapstructure:"size" yaml:"size"`
}

type UploadConfig struct {
	// Mode is "auto" or "confirm".
	Mode       string `mapstructure:"mode"     yaml:"mode"`
	MaxSize    string `mapstructure:"max_size" yaml:"max_size"`
	maxSizeVal int64
}

// MaxSizeBytes is MaxSize parsed; zero means unlimited.
func (c UploadConfig) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

func Default() Config {
	return Config{
		API: APIConfig{
			Hostname: "localhost",
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  "logs/excelpanel.log",
			Rotation: RotationConfig{
				MaxSize:    10,
				MaxBackups: 7,
				MaxAge:     28,
				Compress:   true,
			},
		},
		Pagination: PaginationConfig{DefaultSize: 20},
		Export:     ExportConfig{Dir: ".", Size: 1000},
		Upload:     UploadConfig{Mode: "auto", MaxSize: "20MB"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.hostname", d.API.Hostname)
	v.SetDefault("api.timeout", d.API.Timeout)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)

	v.SetDefault("pagination.default_size", d.Pagination.DefaultSize)

	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.size", d.Export.Size)

	v.SetDefault("upload.mode", d.Upload.Mode)
	v.SetDefault("upload.max_size", d.Upload.MaxSize)
}

// Load reads configuration into v. An empty path searches for config.yaml in
// the working directory and $HOME/.excelpanel; a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	envFiles := []string{".env", ".env.local"}
	for _, envFile := range envFiles {
		// missing .env files are fine
		_ = godotenv.Load(envFile)
	}

	if path != "" {
		v.SetConfigFile(path)
		dir := filepath.Dir(path)
		for _, envFile := range envFiles {
			_ = godotenv.Load(filepath.Join(dir, envFile))
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.excelpanel")
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize validates c and derives parsed values.
func (c *Config) Finalize() error {
	if c.Pagination.DefaultSize <= 0 {
		return fmt.Errorf("pagination.default_size must be positive, got %d", c.Pagination.DefaultSize)
	}
	if c.Export.Size <= 0 {
		return fmt.Errorf("export.size must be positive, got %d", c.Export.Size)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch strings.ToLower(c.Upload.Mode) {
	case "auto", "confirm":
	default:
		return fmt.Errorf("upload.mode must be auto or confirm, got %q", c.Upload.Mode)
	}

	c.Upload.maxSizeVal = 0
	if c.Upload.MaxSize != "" {
		size, err := units.FromHumanSize(c.Upload.MaxSize)
		if err != nil {
			return fmt.Errorf("invalid upload.max_size %q: %w", c.Upload.MaxSize, err)
		}
		c.Upload.maxSizeVal = size
	}
	return nil
}
