// Package config loads the settings of the contact book binaries from an optional YAML file and
// from environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the connection parameters of the legacy contacts database.
//
// WARNING: contains the database password and should not be logged.
type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Name     string `mapstructure:"name"`
}

// Config wraps the entire configuration.
type Config struct {
	Port         int            `mapstructure:"port"`
	GinLogging   string         `mapstructure:"gin_logging"`
	LogLevel     string         `mapstructure:"log_level"`
	DocumentsDir string         `mapstructure:"documents_dir"`
	CachesDir    string         `mapstructure:"caches_dir"`
	ServiceURL   string         `mapstructure:"service_url"`
	Database     DatabaseConfig `mapstructure:"database"`
}

// envBindings maps config keys to the environment variables that can provide their value. The
// first variable that is set wins.
var envBindings = map[string][]string{
	"port":              {"PORT"},
	"gin_logging":       {"GIN_LOGGING"},
	"log_level":         {"LOG_LEVEL"},
	"documents_dir":     {"CONTACTS_DOCUMENTS_DIR"},
	"caches_dir":        {"CONTACTS_CACHES_DIR"},
	"service_url":       {"CONTACTS_URL"},
	"database.user":     {"DBUSER"},
	"database.password": {"DBPWD"},
	"database.host":     {"DBHOST"},
	"database.name":     {"DBNAME"},
}

// setDefaults registers the values used when neither the file nor the environment provide one.
func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	v.SetDefault("port", 8080)
	v.SetDefault("gin_logging", "on")
	v.SetDefault("log_level", "info")
	v.SetDefault("documents_dir", filepath.Join(home, ".youthere", "documents"))
	v.SetDefault("caches_dir", filepath.Join(home, ".youthere", "caches"))
	v.SetDefault("service_url", "http://localhost:8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.name", "test")
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the config file at filePath if it exists. Environment variables override values
// from the file. An empty filePath means environment variables and defaults only.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		return nil, err
	}
	if filePath != "" {
		v.SetConfigFile(filePath)
		v.SetConfigType("yaml")
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the file named by the CONTACTS_CONFIG environment variable, if set.
func LoadDefault() (*Config, error) {
	return Load(os.Getenv("CONTACTS_CONFIG"))
}
