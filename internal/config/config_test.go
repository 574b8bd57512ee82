package config

import (
	"VaultSync/internal/paths"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paths.ConfigHomeOverride = dir
	t.Cleanup(func() { paths.ConfigHomeOverride = "" })
	return dir
}

func TestLoadAppConfigDefaults(t *testing.T) {
	useTempConfigHome(t)

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if conf.Sync.Tool != "vault" {
		t.Errorf("Expected Tool 'vault', got '%s'", conf.Sync.Tool)
	}
	if conf.Sync.VaultID != "app-secrets" {
		t.Errorf("Expected VaultID 'app-secrets', got '%s'", conf.Sync.VaultID)
	}
	if filepath.Base(conf.EnvFilePath) != ".env" || !filepath.IsAbs(conf.EnvFilePath) {
		t.Errorf("Expected absolute .env path, got '%s'", conf.EnvFilePath)
	}
	if conf.LockWait != 10*time.Second {
		t.Errorf("Expected LockWait 10s, got %v", conf.LockWait)
	}
	if _, err := os.Stat(paths.GetConfigFilePath()); !os.IsNotExist(err) {
		t.Errorf("LoadAppConfig must not create a config file, stat err: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := useTempConfigHome(t)

	conf := Default()
	conf.Sync.Tool = "/opt/bin/vaultcli"
	conf.Sync.VaultID = "billing"
	conf.Sync.EnvFile = filepath.Join(dir, "billing.env")
	conf.Sync.LockTimeout = "250ms"

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.Sync.Tool != "/opt/bin/vaultcli" {
		t.Errorf("Expected Tool '/opt/bin/vaultcli', got '%s'", loaded.Sync.Tool)
	}
	if loaded.Sync.VaultID != "billing" {
		t.Errorf("Expected VaultID 'billing', got '%s'", loaded.Sync.VaultID)
	}
	if loaded.EnvFilePath != filepath.Join(dir, "billing.env") {
		t.Errorf("Expected EnvFilePath in temp dir, got '%s'", loaded.EnvFilePath)
	}
	if loaded.LockWait != 250*time.Millisecond {
		t.Errorf("Expected LockWait 250ms, got %v", loaded.LockWait)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	useTempConfigHome(t)

	path := paths.GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[sync]\nvault_id = \"payments\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if conf.Sync.VaultID != "payments" {
		t.Errorf("Expected VaultID 'payments', got '%s'", conf.Sync.VaultID)
	}
	if conf.Sync.Tool != "vault" {
		t.Errorf("Unset keys must keep defaults, got Tool '%s'", conf.Sync.Tool)
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[sync\nvault_id = "},
		{"bad duration", "[sync]\nlock_timeout = \"soon\"\n"},
		{"negative duration", "[sync]\nlock_timeout = \"-1s\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigHome(t)
			path := paths.GetConfigFilePath()
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadAppConfig(); err == nil {
				t.Errorf("LoadAppConfig() expected error for %s", tt.name)
			}
		})
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("VAULTSYNC_TEST_DIR", "/srv/app")
	if got := ExpandVariables("${VAULTSYNC_TEST_DIR}/.env"); got != "/srv/app/.env" {
		t.Errorf("ExpandVariables() = %q", got)
	}
	home, err := os.UserHomeDir()
	if err == nil {
		if got := ExpandVariables("${HOME}/x"); got != home+"/x" {
			t.Errorf("ExpandVariables(${HOME}/x) = %q; want %q", got, home+"/x")
		}
	}
}
