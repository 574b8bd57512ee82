package paths

import (
	"VaultSync/internal/constants"
	"VaultSync/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

// GetConfigDir returns the absolute path to the vaultsync configuration directory
// (e.g., ~/.config/vaultsync).
func GetConfigDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetConfigFilePath returns the absolute path to the vaultsync.toml file.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetLockFilePath returns the path of the advisory lock guarding envFile.
func GetLockFilePath(envFile string) string {
	return envFile + constants.LockFileSuffix
}

// GetWorkingDirectory returns the current directory, or "." when it cannot be determined.
func GetWorkingDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// ResolveEnvFile makes a relative env file path absolute against the working directory.
func ResolveEnvFile(file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(GetWorkingDirectory(), file)
}
