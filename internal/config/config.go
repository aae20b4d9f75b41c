package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "pokerhand"

// DefaultAPIURL is the public card-dealing API.
const DefaultAPIURL = "https://deckofcardsapi.com/api/deck"

// ServerConfig holds the settings of the serve command
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Config represents the application configuration
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DeckCount   int           `mapstructure:"deck_count"`
	RevealDelay time.Duration `mapstructure:"reveal_delay"`
	Art         bool          `mapstructure:"art"`
	ArtWidth    int           `mapstructure:"art_width"`
	Server      ServerConfig  `mapstructure:"server"`
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetCacheDir returns XDG_CACHE_HOME/pokerhand or default path
func GetCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(homeDir, ".cache", appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// NewViper returns a viper instance with defaults and POKERHAND_ environment
// overrides. Nested keys use an underscore, e.g. POKERHAND_SERVER_ADDR.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("deck_count", 1)
	v.SetDefault("reveal_delay", 300*time.Millisecond)
	v.SetDefault("art", false)
	v.SetDefault("art_width", 20)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configPath (or the default config file when empty) into v
// and decodes the result. A missing default config file is not an error.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = GetConfigFilePath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), !explicit && errors.Is(err, os.ErrNotExist):
			// drop values left over from a file read earlier into v
			if err := v.ReadConfig(strings.NewReader("")); err != nil {
				return nil, fmt.Errorf("error resetting config: %w", err)
			}
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.DeckCount < 1 {
		return fmt.Errorf("deck_count must be at least 1, got %d", c.DeckCount)
	}
	if c.RevealDelay < 0 {
		return fmt.Errorf("reveal_delay must not be negative, got %s", c.RevealDelay)
	}
	return nil
}
