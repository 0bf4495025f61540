package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Journal  JournalConfig
	Auth     AuthConfig
	Log      LogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// JournalConfig controls whether finished sittings are recorded.
type JournalConfig struct {
	Enabled bool
}

// AuthConfig locates the session token for the external auth service.
type AuthConfig struct {
	SessionPath string `mapstructure:"session_path"`
}

// LogConfig holds log file settings. The terminal belongs to the TUI, so
// logs always go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowHome bool `mapstructure:"show_home"`
	Timezone string
}

// Path returns the config file location, honouring STILLPOINT_CONFIG.
func Path() string {
	if p := os.Getenv("STILLPOINT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "stillpoint")
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "stillpoint")
}

// Load reads configuration from file and env. Env var overrides use prefix STILLPOINT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "stillpoint.db"))
	v.SetDefault("journal.enabled", true)
	v.SetDefault("auth.session_path", filepath.Join(configDir(), "session.json"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "stillpoint.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.show_home", false)
	v.SetDefault("ui.timezone", "Local")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("STILLPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("auth.session_path", cfg.Auth.SessionPath)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.show_home", cfg.UI.ShowHome)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
