// Package config resolves carbot's settings from flags, environment, an
// optional .env file and an optional carbot.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/corey/carbot/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. CARBOT_CATALOG.
const EnvPrefix = "CARBOT"

// Config is the resolved configuration.
type Config struct {
	Catalog   string `mapstructure:"catalog"`
	Dataset   string `mapstructure:"dataset"` // YAML file overriding the bundled dataset
	DB        string `mapstructure:"db"`      // bbolt file holding imported datasets
	Socket    string `mapstructure:"socket"`  // daemon socket; derived from the working directory when empty
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// ConfigFile is the config file that was read, empty if none.
	ConfigFile string `mapstructure:"-"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"catalog":    "catalog",
	"dataset":    "dataset",
	"db":         "db",
	"socket":     "socket",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// RegisterFlags adds the persistent flags Load understands.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default ./carbot.yaml or $HOME/.carbot/carbot.yaml)")
	flags.String("catalog", "cars", "dataset catalog to query (cars, movies)")
	flags.String("dataset", "", "YAML dataset file to load instead of the bundled one")
	flags.String("db", "", "bbolt database with imported datasets")
	flags.String("socket", "", "daemon socket path")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatConsole, "log format (console, json)")
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("catalog", "cars")
	v.SetDefault("dataset", "")
	v.SetDefault("db", "")
	v.SetDefault("socket", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", logging.FormatConsole)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var explicit string
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("carbot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".carbot"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Catalog = strings.ToLower(strings.TrimSpace(cfg.Catalog))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that do not depend on other packages.
func (c *Config) Validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Dataset != "" && c.DB != "" {
		return fmt.Errorf("dataset and db are mutually exclusive")
	}
	return nil
}
