// Package config loads pathfinder settings from defaults, an optional YAML
// file and PATHFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdrpinto/pathfinder/kb"
	"github.com/pdrpinto/pathfinder/maze"
)

// EnvPrefix prefixes environment overrides, e.g. PATHFINDER_SERVER_ADDR.
const EnvPrefix = "PATHFINDER"

// DefaultMaxGoals keeps a served tour at 8! orderings or fewer.
const DefaultMaxGoals = 8

// Config is the decoded configuration.
type Config struct {
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	Workers   int            `mapstructure:"workers"`
	Terrain   []TerrainEntry `mapstructure:"terrain"`
	Server    ServerConfig   `mapstructure:"server"`
	KB        KBConfig       `mapstructure:"kb"`
}

// TerrainEntry assigns a step cost to a grid marker.
type TerrainEntry struct {
	Marker string `mapstructure:"marker"`
	Cost   int    `mapstructure:"cost"`
}

// ServerConfig configures the serve command. MaxGoals bounds the goals of a
// single solve request; 0 disables the bound.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	MaxGoals int    `mapstructure:"max_goals"`
}

type KBConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// NewViper returns a viper instance with defaults and environment binding set
// up. Callers may bind flags to it before calling Decode.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("workers", 0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_goals", DefaultMaxGoals)
	v.SetDefault("kb.strategy", "resolution")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the file at path, when given, on top of the defaults.
func Load(path string) (*Config, error) {
	v := NewViper()
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}
	return Decode(v)
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Server.MaxGoals < 0 {
		errs = append(errs, fmt.Errorf("server.max_goals must not be negative, got %d", c.Server.MaxGoals))
	}
	for _, entry := range c.Terrain {
		if len(entry.Marker) != 1 {
			errs = append(errs, fmt.Errorf("terrain marker %q must be a single character", entry.Marker))
		}
		if entry.Cost < 1 {
			errs = append(errs, fmt.Errorf("terrain cost for %q must be at least 1, got %d", entry.Marker, entry.Cost))
		}
	}
	if _, err := c.Strategy(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) Strategy() (kb.Strategy, error) {
	return kb.ParseStrategy(c.KB.Strategy)
}

// TerrainOptions turns the terrain table into grid options.
func (c *Config) TerrainOptions() []maze.Option {
	options := make([]maze.Option, 0, len(c.Terrain))
	for _, entry := range c.Terrain {
		if len(entry.Marker) == 1 {
			options = append(options, maze.WithTerrainCost(entry.Marker[0], entry.Cost))
		}
	}
	return options
}

// NewLogger builds a text or JSON slog logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	handlerOptions := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
}
