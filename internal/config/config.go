// Package config resolves server settings from a .env file, an optional
// tilegame.yaml and TILEGAME_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const envPrefix = "TILEGAME"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds resolved server settings
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	StorageType string        `mapstructure:"storage_type"`
	RedisURL    string        `mapstructure:"redis_url"`
	SQLitePath  string        `mapstructure:"sqlite_path"`
	GameTTL     time.Duration `mapstructure:"game_ttl"`

	LogLevel string `mapstructure:"log_level"`

	// Seed makes tile shuffles reproducible when set
	Seed string `mapstructure:"seed"`

	TokenCost int `mapstructure:"token_cost"`
}

// Options controls where Load looks for settings
type Options struct {
	EnvFile    string   // .env file; missing is fine
	ConfigName string   // config file name without extension
	ConfigDirs []string // searched in order
}

// DefaultOptions looks for .env and tilegame.yaml in the working directory
func DefaultOptions() Options {
	return Options{
		EnvFile:    ".env",
		ConfigName: "tilegame",
		ConfigDirs: []string{"."},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("port", 8080)
	v.SetDefault("storage_type", StorageMemory)
	v.SetDefault("redis_url", "redis://localhost:6379")
	v.SetDefault("sqlite_path", "tilegame.db")
	v.SetDefault("game_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", "")
	v.SetDefault("token_cost", bcrypt.DefaultCost)
}

// Load resolves the configuration
func Load(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigName != "" {
		v.SetConfigName(opts.ConfigName)
		v.SetConfigType("yaml")
		for _, dir := range opts.ConfigDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage_type %q: must be memory, redis or sqlite", c.StorageType)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.TokenCost < bcrypt.MinCost || c.TokenCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid token_cost %d", c.TokenCost)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return level, nil
}
