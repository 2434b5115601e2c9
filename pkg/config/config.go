// Package config provides a reusable loader for ithos configuration files
// and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for an ithosctl invocation. It mirrors
// the structure of the YAML files under config/.
type Config struct {
	Chain struct {
		DataDir   string `mapstructure:"data_dir" json:"data_dir"`
		AdminUser string `mapstructure:"admin_user" json:"admin_user"`
	} `mapstructure:"chain" json:"chain"`

	Ciphersuite struct {
		Signature  string `mapstructure:"signature" json:"signature"`
		Encryption string `mapstructure:"encryption" json:"encryption"`
	} `mapstructure:"ciphersuite" json:"ciphersuite"`

	Storage struct {
		BoltPath   string `mapstructure:"bolt_path" json:"bolt_path"`
		FileMode   uint32 `mapstructure:"file_mode" json:"file_mode"`
		SyncWrites bool   `mapstructure:"sync_writes" json:"sync_writes"`
	} `mapstructure:"storage" json:"storage"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env via godotenv in cmd/ithosctl

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ITHOS_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(envOrDefault("ITHOS_ENV", ""))
}

// MustLoad loads configuration for env and panics on error. Acceptable for
// CLI initialization, where a bad or missing config file should abort
// before any subcommand runs.
func MustLoad(env string) *Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// wrap adds context to an error message, returning nil if err is nil.
func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// envOrDefault returns the value of the environment variable identified by
// key, or fallback if it is unset or empty.
func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
