// Package config provides Viper-based hierarchical configuration: defaults,
// then an optional config file, then UPIAUDIT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Classify struct {
		HashLengthThreshold int    `mapstructure:"hash_length_threshold" yaml:"hash_length_threshold"`
		PhoneMinDigits      int    `mapstructure:"phone_min_digits" yaml:"phone_min_digits"`
		KeywordsFile        string `mapstructure:"keywords_file" yaml:"keywords_file"`
	} `mapstructure:"classify" yaml:"classify"`

	Extract struct {
		MinAccountDigits         int `mapstructure:"min_account_digits" yaml:"min_account_digits"`
		MaxAccountDigits         int `mapstructure:"max_account_digits" yaml:"max_account_digits"`
		FallbackMinAccountDigits int `mapstructure:"fallback_min_account_digits" yaml:"fallback_min_account_digits"`
	} `mapstructure:"extract" yaml:"extract"`

	Group struct {
		DistinctThreshold int `mapstructure:"distinct_threshold" yaml:"distinct_threshold"`
	} `mapstructure:"group" yaml:"group"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

var loadEnvOnce sync.Once

// LoadEnv loads a .env file from the working directory if one exists.
// Safe to call more than once.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	})
}

// InitializeConfig builds the configuration from defaults, an optional
// config.yaml ($HOME/.upi-audit, ./.upi-audit, .) and environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.upi-audit")
	v.AddConfigPath(".upi-audit")
	v.AddConfigPath(".")

	v.SetEnvPrefix("UPIAUDIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not kill the run; defaults and
			// env vars still apply.
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key is always taken from the conventional unprefixed
	// variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GEMINI_API_KEY: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("classify.hash_length_threshold", 25)
	v.SetDefault("classify.phone_min_digits", 10)
	v.SetDefault("classify.keywords_file", "keywords.yaml")

	v.SetDefault("extract.min_account_digits", 9)
	v.SetDefault("extract.max_account_digits", 18)
	v.SetDefault("extract.fallback_min_account_digits", 11)

	v.SetDefault("group.distinct_threshold", 1)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Classify.HashLengthThreshold < 1 {
		return fmt.Errorf("classify.hash_length_threshold must be positive, got: %d", config.Classify.HashLengthThreshold)
	}
	if config.Classify.PhoneMinDigits < 1 {
		return fmt.Errorf("classify.phone_min_digits must be positive, got: %d", config.Classify.PhoneMinDigits)
	}

	if config.Extract.MinAccountDigits < 1 || config.Extract.MaxAccountDigits < config.Extract.MinAccountDigits {
		return fmt.Errorf("extract account digit bounds invalid: min=%d max=%d",
			config.Extract.MinAccountDigits, config.Extract.MaxAccountDigits)
	}
	if config.Extract.FallbackMinAccountDigits < config.Extract.MinAccountDigits {
		return fmt.Errorf("extract.fallback_min_account_digits must be >= min_account_digits, got: %d",
			config.Extract.FallbackMinAccountDigits)
	}

	if config.Group.DistinctThreshold < 1 {
		return fmt.Errorf("group.distinct_threshold must be at least 1, got: %d", config.Group.DistinctThreshold)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI review assist is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}
	return nil
}

// ConfigureLogging creates a logrus logger matching the Log section.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if config.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
