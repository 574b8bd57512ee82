package constants

import "time"

// Sync defaults, used when neither the config file nor a flag overrides them.
const (
	DefaultVaultID     = "app-secrets"
	DefaultEnvFileName = ".env"
	DefaultVaultTool   = "vault"
	DefaultLockTimeout = 10 * time.Second
)

// Vault tool invocation: <tool> secret list <id> -o env
const (
	VaultListCommand    = "secret"
	VaultListSubcommand = "list"
	VaultOutputFlag     = "-o"
	VaultOutputFormat   = "env"
)

// File Names
const (
	AppConfigFileName = "vaultsync.toml"
	LockFileSuffix    = ".lock"
	TempFilePattern   = ".vaultsync-*.tmp"
)

// Config TOML Keys
const (
	LockTimeoutKey = "lock_timeout"
)

// File modes
const (
	NewEnvFileMode = 0o600
	DirMode        = 0o755
)
