// Package config loads application configuration with viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	relay "github.com/chat-relay/chat-relay/relay"
)

// Config stores all configuration of the application. Values are read by
// viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig stores HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig stores the embedded libsql database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig stores remote completion backend settings.
type LLMConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model"`
	MaxNewTokens int     `mapstructure:"max_new_tokens"`
	Temperature  float32 `mapstructure:"temperature"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`   // zerolog level name
	Pretty  bool   `mapstructure:"pretty"`  // console writer instead of JSON
	Tracing bool   `mapstructure:"tracing"` // span/event tracing of chat requests
}

// Load reads configuration from file or environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", relay.DefaultAppName))
		v.AddConfigPath(relay.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", relay.DefaultDatabasePath)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_new_tokens", 1024)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.tracing", true)

	v.AutomaticEnv()
	// llm.api_key becomes LLM_API_KEY and so on
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// honor the conventional OPENAI_API_KEY as a fallback
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file is fine, defaults and env vars apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}

// Validate fails fast on settings whose absence would otherwise only surface
// on the first request.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("completion API key is not set (set LLM_API_KEY or OPENAI_API_KEY, or llm.api_key in the config file)")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	return nil
}
