package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// DefaultPrefix is the environment variable prefix used by the CLI.
const DefaultPrefix = "GODB_"

// Config holds the runtime settings of the godb tool.
type Config struct {
	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `mapstructure:"log_pretty"`
	Collation string `mapstructure:"collation" validate:"required"`
	Format    string `mapstructure:"format" validate:"oneof=text json"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		LogLevel:  "warn",
		Collation: "und",
		Format:    "text",
	}
}

// Load reads configuration from an optional .env file in the working
// directory and from environment variables starting with prefix
// (GODB_LOG_LEVEL -> log_level), on top of Defaults, then validates it.
func Load(prefix string) (Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_pretty", def.LogPretty)
	v.SetDefault("collation", def.Collation)
	v.SetDefault("format", def.Format)

	// The .env file is optional.
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read .env: %w", err)
		}
	}
	for _, key := range v.AllKeys() {
		// .env keys are written with the prefix, e.g. GODB_FORMAT=json
		trimmed := strings.TrimPrefix(key, strings.ToLower(prefix))
		if trimmed != key {
			v.Set(trimmed, v.Get(key))
		}
	}

	prefixUpper := strings.ToUpper(prefix)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefixUpper) {
			continue
		}
		// GODB_LOG_LEVEL -> log_level
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefixUpper))
		v.Set(key, pair[1])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that Collation is a BCP 47 tag.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := language.Parse(c.Collation); err != nil {
		return fmt.Errorf("invalid config: collation %q: %w", c.Collation, err)
	}
	return nil
}

// Language returns the collation tag. Call after Validate.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Collation)
	if err != nil {
		return language.Und
	}
	return tag
}
