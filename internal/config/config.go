package config

import (
	"fmt"
	"time"

	"github.com/at-ishikawa/mathsnap/internal/solver"
	"github.com/at-ishikawa/mathsnap/internal/upload"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultServerBaseURL = "http://localhost:8000"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type ServerConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout of 0 waits for the server indefinitely
	Timeout          time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts" validate:"lte=5"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" validate:"gt=0"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mathsnap")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.base_url", DefaultServerBaseURL)
	v.SetDefault("server.timeout", time.Duration(0))
	v.SetDefault("server.max_retry_attempts", solver.DefaultMaxRetryAttempts)
	v.SetDefault("upload.max_bytes", upload.DefaultMaxBytes)
	// Template is optional - if not specified, the embedded report template is used
	v.SetDefault("templates.report_template", "")

	if err := v.BindEnv("server.base_url", "MATHSNAP_SERVER_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind MATHSNAP_SERVER_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", translateErrors(err, loader.translator))
	}

	return &cfg, nil
}
