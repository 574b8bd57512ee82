package config

import (
	"VaultSync/internal/constants"
	"VaultSync/internal/paths"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Sync SyncConfig `toml:"sync"`
	Log  LogConfig  `toml:"log"`

	// These are helper fields for runtime use, not saved to TOML
	EnvFilePath string        `toml:"-"`
	LockWait    time.Duration `toml:"-"`
}

// SyncConfig holds the vault and env file settings.
type SyncConfig struct {
	Tool        string `toml:"tool"`
	VaultID     string `toml:"vault_id"`
	EnvFile     string `toml:"env_file"`
	LockTimeout string `toml:"lock_timeout"` // Go duration, e.g. "10s"
}

// LogConfig holds logging related settings.
type LogConfig struct {
	File string `toml:"log_file"` // empty disables the file log
}

// Default returns the built-in configuration.
func Default() AppConfig {
	conf := AppConfig{
		Sync: SyncConfig{
			Tool:        constants.DefaultVaultTool,
			VaultID:     constants.DefaultVaultID,
			EnvFile:     constants.DefaultEnvFileName,
			LockTimeout: constants.DefaultLockTimeout.String(),
		},
	}
	_ = conf.Resolve()
	return conf
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Anything else is looked up in the process environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// Resolve fills the runtime-only fields from the TOML fields.
func (c *AppConfig) Resolve() error {
	c.EnvFilePath = paths.ResolveEnvFile(ExpandVariables(c.Sync.EnvFile))
	if c.Log.File != "" {
		c.Log.File = ExpandVariables(c.Log.File)
	}

	wait, err := time.ParseDuration(c.Sync.LockTimeout)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", constants.LockTimeoutKey, c.Sync.LockTimeout, err)
	}
	if wait < 0 {
		return fmt.Errorf("invalid %s %q: must not be negative", constants.LockTimeoutKey, c.Sync.LockTimeout)
	}
	c.LockWait = wait
	return nil
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file yields the defaults; an unreadable or malformed one is an error.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := conf.Resolve(); err != nil {
		return conf, fmt.Errorf("parsing %s: %w", path, err)
	}
	return conf, nil
}

// Marshal renders the configuration as TOML.
func Marshal(conf AppConfig) ([]byte, error) {
	return toml.Marshal(conf)
}

// SaveAppConfig writes the configuration to vaultsync.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		return err
	}

	data, err := Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
