// Package config defines keysort's process-level configuration:
// the default dialect keysortctl uses for schema files that declare
// none, logging settings,
// and the unknown-table warning threshold. Settings layer as
// defaults, then YAML file, then environment variable overrides, then
// bound command-line flags, via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/log"
	"github.com/turtacn/keysort/common/types/enum"

	"go.uber.org/zap"
)

// Config is keysort's top-level configuration structure.
type Config struct {
	// Dialect is the default dialect used by cmd/keysortctl when a
	// schema file does not declare one explicitly.
	Dialect string `mapstructure:"dialect" yaml:"dialect"`
	// Log holds logging settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`
	// Registry holds UnknownTableRegistry settings.
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
}

// LogConfig defines logging-related settings.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	FilePath string `mapstructure:"filepath" yaml:"filePath"`
}

// RegistryConfig defines UnknownTableRegistry settings.
type RegistryConfig struct {
	// WarnLogThreshold is the per-table warning count at which the
	// encoder logs a reminder that the schema is stale for that table.
	WarnLogThreshold int64 `mapstructure:"warnlogthreshold" yaml:"warnLogThreshold"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
	v            = newViper()
)

// newViper builds the viper instance used by LoadConfig: KEYSORT_-
// prefixed environment variables, with "." and "-" in nested key names
// replaced by "_" to form the corresponding env var name.
func newViper() *viper.Viper {
	vi := viper.New()
	vi.SetEnvPrefix("KEYSORT")
	vi.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vi.AutomaticEnv()
	vi.BindEnv("dialect")
	vi.BindEnv("log.level")
	vi.BindEnv("log.filepath")
	vi.BindEnv("registry.warnlogthreshold")
	return vi
}

// BindPFlags binds keysortctl's persistent flags to their viper keys,
// so an explicit --dialect or --log-level on the command line takes
// priority over both the config file and the environment.
func BindPFlags(flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	if f := flags.Lookup("dialect"); f != nil {
		v.BindPFlag("dialect", f)
	}
	if f := flags.Lookup("log-level"); f != nil {
		v.BindPFlag("log.level", f)
	}
	if f := flags.Lookup("log-file"); f != nil {
		v.BindPFlag("log.filepath", f)
	}
}

// LoadConfig initializes and loads the global configuration: defaults
// first, then the YAML file at configPath if it exists, then
// environment variable and bound-flag overrides via viper.
func LoadConfig(configPath string) error {
	var err error
	configOnce.Do(func() {
		cfg := &Config{}
		cfg.applyDefaults()

		if configPath != "" {
			if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
				log.GetLogger().Info("configuration file not found, using defaults", zap.String("path", configPath))
			} else if statErr != nil {
				err = errors.New(errors.CategoryConfig, errors.CodeConfigLoadFailed,
					fmt.Sprintf("failed to stat configuration file %s", configPath), statErr)
				return
			} else {
				v.SetConfigFile(configPath)
				if readErr := v.ReadInConfig(); readErr != nil {
					err = errors.New(errors.CategoryConfig, errors.CodeConfigLoadFailed,
						fmt.Sprintf("failed to read configuration file %s", configPath), readErr)
					return
				}
				log.GetLogger().Info("configuration loaded from file", zap.String("path", configPath))
			}
		}

		if unmarshalErr := v.Unmarshal(cfg); unmarshalErr != nil {
			err = errors.New(errors.CategoryConfig, errors.CodeConfigInvalidValue,
				fmt.Sprintf("failed to unmarshal configuration from %s", configPath), unmarshalErr)
			return
		}

		cfg.validateAndNormalize()
		globalConfig = cfg
	})
	return err
}

// GetConfig returns the global configuration, loading defaults if
// LoadConfig was never called.
func GetConfig() *Config {
	if globalConfig == nil {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}
	return globalConfig
}

func (c *Config) applyDefaults() {
	c.Dialect = enum.GoogleStandardSql.String()
	c.Log.Level = constants.DefaultLogLevel
	c.Log.FilePath = constants.DefaultLogFilePath
	c.Registry.WarnLogThreshold = constants.UnknownTableWarnLogThreshold

	v.SetDefault("dialect", c.Dialect)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.filepath", c.Log.FilePath)
	v.SetDefault("registry.warnlogthreshold", c.Registry.WarnLogThreshold)
}

// validateAndNormalize rejects or normalizes values viper produced
// from the file, environment, or bound flags, logging a warning and
// falling back to the default for anything invalid.
func (c *Config) validateAndNormalize() {
	logger := log.GetLogger().With(zap.String("component", enum.ComponentConfig.String()))

	if _, err := enum.ParseLogLevel(strings.ToUpper(c.Log.Level)); err != nil {
		logger.Warn("invalid log level, falling back to default", zap.String("value", c.Log.Level), zap.Error(err))
		c.Log.Level = constants.DefaultLogLevel
	} else {
		c.Log.Level = strings.ToUpper(c.Log.Level)
	}

	if c.Log.FilePath != "" {
		c.Log.FilePath = expandPath(c.Log.FilePath)
	}
}

// ParseDialect maps a config string to enum.Dialect.
func ParseDialect(s string) (enum.Dialect, error) {
	switch strings.ToLower(s) {
	case "", "googlestandardsql", "google_standard_sql":
		return enum.GoogleStandardSql, nil
	case "postgresql", "postgres":
		return enum.PostgreSql, nil
	default:
		return enum.GoogleStandardSql, errors.New(errors.CategoryConfig, errors.CodeConfigInvalidValue,
			fmt.Sprintf("unknown dialect %q", s), nil)
	}
}

// expandPath expands a leading ~ and makes the path absolute.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
