package cmd

import (
	"io"

	"github.com/spf13/pflag"
)

// NewFlagSet defines the pflags used for argument parsing and help.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("vaultsync", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	// Sync
	fs.StringP("vault-id", "i", "", "Vault identifier to list secrets from")
	fs.StringP("file", "f", "", "Env file to merge secrets into")
	fs.StringP("tool", "t", "", "Vault command-line tool")
	fs.String("lock-timeout", "", "How long to wait for another run on the same file (e.g. 10s)")
	fs.BoolP("dry-run", "n", false, "Show the changes without writing the env file")
	fs.Bool("show-values", false, "Show secret values in the dry-run diff")

	// Configuration
	fs.Bool("config-show", false, "Show the effective configuration")
	fs.Bool("config-save", false, "Save the effective configuration to the config file")

	// Modifiers
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.BoolP("debug", "x", false, "Debug output")
	fs.BoolP("version", "V", false, "Show version")
	fs.BoolP("help", "h", false, "Show help")
	return fs
}
