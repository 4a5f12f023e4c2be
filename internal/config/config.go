// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Common errors
var (
	Err = errors.New("config error")
)

// DefaultAdditionalCharacters is the out-of-the-box set of extra permitted
// characters: accented Latin letters plus common punctuation. Users extend or
// replace it via rename.additional_characters.
const DefaultAdditionalCharacters = "äöüÄÖÜßàáâèéêìíîòóôùúûçñÀÁÂÈÉÊÌÍÎÒÓÔÙÚÛÇÑ'&+,!()"

// Config represents the application configuration
type Config struct {
	Vault        VaultConfig        `mapstructure:"vault"`
	Rename       RenameConfig       `mapstructure:"rename"`
	Watch        WatchConfig        `mapstructure:"watch"`
	Notification NotificationConfig `mapstructure:"notification"`
	Output       OutputConfig       `mapstructure:"output"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// VaultConfig locates the vault on disk
type VaultConfig struct {
	Path string `mapstructure:"path"`
}

// RenameConfig contains the rename policy settings
type RenameConfig struct {
	Automatically        bool   `mapstructure:"automatically"`
	AddOriginalAlias     bool   `mapstructure:"add_original_alias"`
	AdditionalCharacters string `mapstructure:"additional_characters"`
}

// WatchConfig contains settings for automatic rename mode
type WatchConfig struct {
	// SettleDelay is how long a newly created file is left alone before the
	// rename is attempted, giving the creating process time to finish
	// writing. Best effort, not a guarantee.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

// NotificationConfig contains notification settings
type NotificationConfig struct {
	ShoutrrrURL string `mapstructure:"shoutrrr_url"` // Shoutrrr URL format
	Enabled     bool   `mapstructure:"enabled"`
}

// OutputConfig contains output path settings
type OutputConfig struct {
	ReportsDir  string `mapstructure:"reports_dir"`
	HistoryFile string `mapstructure:"history_file"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/safename")
		v.AddConfigPath("/etc/safename")
	}

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, fmt.Errorf("error reading config file from %s: %w", configFile, err)
		}
		// Config file not found; using defaults and env vars
	}

	// Environment variable support
	v.SetEnvPrefix("SAFENAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("error unmarshaling config from %s: %w", configFile, err)
	}

	// Store the config file path in the struct (DI approach, no global state)
	cfg.ConfigFilePath = v.ConfigFileUsed()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("config validation failed for %s: %w", configFile, err)
	}

	return &cfg, nil
}

// LoadFromViper reads configuration from the global viper instance (for testing)
func LoadFromViper() (*Config, error) {
	// Set defaults first
	setDefaults(viper.GetViper())

	// Environment variable support
	viper.SetEnvPrefix("SAFENAME")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config from global viper instance: %w", err)
	}

	// Store the config file path (DI approach, even for testing)
	cfg.ConfigFilePath = viper.ConfigFileUsed()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for global viper instance: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Vault defaults
	v.SetDefault("vault.path", ".")

	// Rename defaults
	v.SetDefault("rename.automatically", true)
	v.SetDefault("rename.add_original_alias", true)
	v.SetDefault("rename.additional_characters", DefaultAdditionalCharacters)

	// Watch defaults
	v.SetDefault("watch.settle_delay", "2s")

	// Notification defaults
	v.SetDefault("notification.shoutrrr_url", "") // Required for AutomaticEnv to work
	v.SetDefault("notification.enabled", false)

	// Output defaults
	v.SetDefault("output.reports_dir", "./reports")
	v.SetDefault("output.history_file", "./.safename/history.json")
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	configSource := c.ConfigFilePath
	if configSource == "" {
		configSource = "(defaults/environment)"
	}

	if err := c.validateRequiredFields(configSource); err != nil {
		return err
	}

	return c.validateRanges(configSource)
}

func (c *Config) validateRequiredFields(configSource string) error {
	requiredFields := []struct {
		value   string
		message string
	}{
		{c.Vault.Path, "vault.path is required in config %s"},
		{c.Output.ReportsDir, "output.reports_dir is required in config %s"},
		{c.Output.HistoryFile, "output.history_file is required in config %s"},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf(field.message, configSource)
		}
	}
	return nil
}

func (c *Config) validateRanges(configSource string) error {
	if c.Watch.SettleDelay < 0 || c.Watch.SettleDelay > time.Minute {
		return fmt.Errorf("watch.settle_delay must be between 0s and 1m, got %s in config %s",
			c.Watch.SettleDelay, configSource)
	}
	return nil
}
