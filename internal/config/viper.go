// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"rootedweb/lbs-invoice/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
		Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
	} `mapstructure:"log" yaml:"log"`

	Report struct {
		LogoPath  string `mapstructure:"logo_path" yaml:"logo_path"`
		OutputDir string `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	} `mapstructure:"report" yaml:"report"`

	Server struct {
		Addr            string        `mapstructure:"addr" yaml:"addr" validate:"required"`
		SessionTTL      time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"min=1m"`
		MaxUploadMB     int64         `mapstructure:"max_upload_mb" yaml:"max_upload_mb" validate:"min=1,max=100"`
		RateLimitRPS    float64       `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps" validate:"gt=0"`
		RateLimitBurst  int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst" validate:"min=1"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1s"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then LBS_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.lbs-invoice")
	v.AddConfigPath(".lbs-invoice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LBS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
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

	v.SetDefault("report.logo_path", "storage/logos/_RL_Primary_Red.png")
	v.SetDefault("report.output_dir", "storage/generated")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.rate_limit_rps", 2.0)
	v.SetDefault("server.rate_limit_burst", 5)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

func validateConfig(config *Config) error {
	config.Log.Level = strings.ToLower(config.Log.Level)
	config.Log.Format = strings.ToLower(config.Log.Format)

	if err := validator.New().Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s: failed '%s' check (value: %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// NewLogger builds the application logger from the configuration.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
