// Package config owns the server configuration: its keys, defaults and
// validation. Values come from flags, an optional YAML file and DOCSERVER_*
// environment variables, in viper's usual precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DOCSERVER"

	ConfigFileName      = ".docserver"
	ConfigFileExtension = ".yaml"
)

const (
	DBModeMemory = "memory"
	DBModeLocal  = "local"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Keys
const (
	KeyServerMode       = "server.mode"
	KeyServerPort       = "server.port"
	KeyServerSocketPath = "server.socket_path"
	KeyDBMode           = "db.mode"
	KeyDBPath           = "db.path"
	KeyDBName           = "db.name"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyAuthHMACSecret   = "auth.hmac_secret"
	KeyRedisAddr        = "redis.addr"
	KeyRedisChannel     = "redis.channel"
	KeyIndexQueueSize   = "index.queue_size"
	KeyIndexWorkers     = "index.workers"
)

type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	DB     DBConfig     `mapstructure:"db" yaml:"db"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Auth   AuthConfig   `mapstructure:"auth" yaml:"auth"`
	Redis  RedisConfig  `mapstructure:"redis" yaml:"redis"`
	Index  IndexConfig  `mapstructure:"index" yaml:"index"`
}

type ServerConfig struct {
	Mode       string `mapstructure:"mode" yaml:"mode"`
	Port       int    `mapstructure:"port" yaml:"port"`
	SocketPath string `mapstructure:"socket_path" yaml:"socket_path"`
}

type DBConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode"`
	Path string `mapstructure:"path" yaml:"path"`
	Name string `mapstructure:"name" yaml:"name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AuthConfig enables JWT auth when HMACSecret is set.
type AuthConfig struct {
	HMACSecret string `mapstructure:"hmac_secret" yaml:"hmac_secret"`
}

// RedisConfig enables the cross-instance change feed when Addr is set.
type RedisConfig struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Channel string `mapstructure:"channel" yaml:"channel"`
}

type IndexConfig struct {
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
	Workers   int `mapstructure:"workers" yaml:"workers"`
}

// DefaultDataDir is where local databases live unless db.path says
// otherwise.
func DefaultDataDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".docserver"), nil
}

// DefaultConfigFile is $HOME/.docserver.yaml.
func DefaultConfigFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ConfigFileName+ConfigFileExtension), nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerMode, "tcp")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerSocketPath, "")
	v.SetDefault(KeyDBMode, DBModeMemory)
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeyDBName, "docserver")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, LogFormatJSON)
	v.SetDefault(KeyAuthHMACSecret, "")
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyRedisChannel, "docserver:documents")
	v.SetDefault(KeyIndexQueueSize, 256)
	v.SetDefault(KeyIndexWorkers, 1)
}

// NewViper returns a viper instance with defaults and environment binding,
// e.g. DOCSERVER_SERVER_PORT for server.port.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile reads path into v. A missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load decodes v and validates the result.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DB.Mode == DBModeLocal && cfg.DB.Path == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DB.Path = dir
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Server.Mode {
	case "tcp":
		if c.Server.Port < 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 65535, got %d", KeyServerPort, c.Server.Port))
		}
	case "uds":
	default:
		errs = append(errs, fmt.Errorf("%s must be tcp or uds, got %q", KeyServerMode, c.Server.Mode))
	}

	switch c.DB.Mode {
	case DBModeMemory:
	case DBModeLocal:
		if c.DB.Name == "" {
			errs = append(errs, fmt.Errorf("%s is required for local databases", KeyDBName))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be memory or local, got %q", KeyDBMode, c.DB.Mode))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatText {
		errs = append(errs, fmt.Errorf("%s must be json or text, got %q", KeyLogFormat, c.Log.Format))
	}

	if c.Redis.Addr != "" && c.Redis.Channel == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", KeyRedisChannel, KeyRedisAddr))
	}
	if c.Index.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyIndexQueueSize, c.Index.QueueSize))
	}
	if c.Index.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyIndexWorkers, c.Index.Workers))
	}
	return errors.Join(errs...)
}

// Redacted returns a copy of c that is safe to print.
func (c Config) Redacted() Config {
	if c.Auth.HMACSecret != "" {
		c.Auth.HMACSecret = "REDACTED"
	}
	return c
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return level, nil
}

// NewLogger builds the root logger described by c.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
