// Package config loads the pasty CLI settings from the config file, the
// environment (PASTY_*) and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "PASTY"

	KeyServer    = "server"
	KeyUsername  = "username"
	KeyVerifyTLS = "verify_tls"
	KeyTimeout   = "timeout"
	KeyPassword  = "password"

	DefaultTimeout = 30 * time.Second
)

type Config struct {
	Server    string        `mapstructure:"server"`
	Username  string        `mapstructure:"username"`
	VerifyTLS bool          `mapstructure:"verify_tls"`
	Timeout   time.Duration `mapstructure:"timeout"`
	// Password is only ever read from PASTY_PASSWORD; Save never writes it.
	Password string `mapstructure:"password"`
}

// DefaultPath returns ~/.pasty/config.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pasty", "config.yaml"), nil
}

// NewViper returns a viper instance with pasty's defaults and environment
// bindings. Flags are bound onto it by the caller.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyServer, "")
	v.SetDefault(KeyUsername, "")
	// Certificates are not verified unless asked for.
	v.SetDefault(KeyVerifyTLS, false)
	v.SetDefault(KeyTimeout, DefaultTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyPassword)

	return v
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads path into v (a missing file is fine) and decodes the merged
// settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Server = strings.TrimSpace(cfg.Server)
	cfg.Username = strings.TrimSpace(cfg.Username)

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate checks the settings needed to talk to a clipboard server.
func (c *Config) Validate() error {
	if c.Server == "" {
		return errors.New("no server configured, run 'pasty login' or pass --server")
	}
	if c.Username == "" {
		return errors.New("no username configured, run 'pasty login' or pass --username")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Save writes the non-secret settings to path as YAML.
func Save(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.Set(KeyServer, c.Server)
	v.Set(KeyUsername, c.Username)
	v.Set(KeyVerifyTLS, c.VerifyTLS)
	v.Set(KeyTimeout, c.Timeout.String())

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
