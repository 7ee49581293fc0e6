package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
// Nested keys use underscores: server.port is FLASHNOTES_SERVER_PORT.
const EnvPrefix = "FLASHNOTES"

// defaults lists every configuration key with its default value. Viper only
// binds environment variables for keys it knows about, so keys without a
// meaningful default are registered with their zero value.
var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.log_format":       "json",
	"server.max_upload_bytes": 5 << 20,

	"pipeline.max_chunk_length": 1000,
	"pipeline.concurrency":      1,

	"llm.provider":             "huggingface",
	"llm.model_name":           "facebook/bart-large-cnn",
	"llm.api_key":              "",
	"llm.base_url":             "",
	"llm.max_length":           130,
	"llm.min_length":           30,
	"llm.sampling":             false,
	"llm.device":               "auto",
	"llm.max_retries":          2,
	"llm.retry_delay_seconds":  2,
	"llm.timeout_seconds":      60,
	"llm.prompt_template_path": "",
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, in increasing order of precedence.
//
// When configPath is empty, a file named "config" (any format viper
// supports) is looked up in the working directory; its absence is not an
// error. An explicit configPath must exist.
//
// Returns a populated, validated Config or an error if loading or
// validation fails.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
