package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration shared by trackit and trackitd.
type Config struct {
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
	Log     LogConfig
	Server  ServerConfig
}

// APIConfig points the client at the habits API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout time.Duration
}

// SessionConfig holds where the bearer token comes from.
type SessionConfig struct {
	TokenEnv string `mapstructure:"token_env"`
	Token    string
	Name     string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	WeekLabels string `mapstructure:"week_labels"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path   string
	Level  string
	Format string
}

// ServerConfig holds trackitd settings.
type ServerConfig struct {
	Addr         string
	DatabasePath string        `mapstructure:"database_path"`
	JWTSecretEnv string        `mapstructure:"jwt_secret_env"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// Load reads configuration from file and env. Env var overrides use prefix TRACKIT_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("session.token_env", "TRACKIT_TOKEN")
	v.SetDefault("session.token", "")
	v.SetDefault("session.name", "")
	v.SetDefault("ui.week_labels", "SMTWTFS")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "trackit", "trackit.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.database_path", filepath.Join(home, ".local", "share", "trackit", "trackitd.db"))
	v.SetDefault("server.jwt_secret_env", "TRACKIT_JWT_SECRET")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.token_ttl", 720*time.Hour)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TRACKIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "trackit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TRACKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	return c, nil
}

// Save writes non-secret settings to disk, creating the config directory if needed.
// Tokens and the JWT secret are never written here; use the secrets store or env vars.
func Save(cfg Config) error {
	path := os.Getenv("TRACKIT_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "trackit", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("session.token_env", cfg.Session.TokenEnv)
	v.Set("session.name", cfg.Session.Name)
	v.Set("ui.week_labels", cfg.UI.WeekLabels)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.database_path", cfg.Server.DatabasePath)
	v.Set("server.jwt_secret_env", cfg.Server.JWTSecretEnv)
	v.Set("server.token_ttl", cfg.Server.TokenTTL.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
