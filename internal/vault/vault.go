// Package vault fetches secret listings from an external vault command-line tool.
//
// The tool is invoked as:
//
//	<tool> secret list <id> -o env
//
// and must print one KEY=VALUE pair per line on standard output, exiting
// non-zero on any error (authentication, network, unknown identifier).
package vault

import (
	"VaultSync/internal/constants"
	"VaultSync/internal/envutil"
	"VaultSync/internal/exec"
	"VaultSync/internal/logger"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingID is returned when no vault identifier was supplied.
var ErrMissingID = errors.New("no vault identifier given")

// FetchError reports a failed vault fetch. Nothing local has been modified
// when it is returned.
type FetchError struct {
	Tool     string
	VaultID  string
	ExitCode int // -1 when the tool did not run to completion
	Err      error
}

func (e *FetchError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("fetching secrets for %q with %s: exit code %d: %v", e.VaultID, e.Tool, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("fetching secrets for %q with %s: %v", e.VaultID, e.Tool, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher runs the vault tool.
type Fetcher struct {
	Tool string
}

// NewFetcher returns a Fetcher for tool, falling back to the default tool name.
func NewFetcher(tool string) *Fetcher {
	if tool == "" {
		tool = constants.DefaultVaultTool
	}
	return &Fetcher{Tool: tool}
}

// Args returns the arguments passed to the tool for id.
func Args(id string) []string {
	return []string{constants.VaultListCommand, constants.VaultListSubcommand, id, constants.VaultOutputFlag, constants.VaultOutputFormat}
}

// Fetch returns the raw listing printed by the tool. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &FetchError{Tool: f.Tool, VaultID: id, ExitCode: -1, Err: ErrMissingID}
	}

	res, err := exec.RunCapture(ctx, "info", f.Tool, Args(id)...)
	if err != nil {
		exec.LogLines(ctx, f.Tool+":error", res.Stderr)
		return nil, &FetchError{Tool: f.Tool, VaultID: id, ExitCode: res.ExitCode, Err: err}
	}
	exec.LogLines(ctx, f.Tool+":debug", res.Stderr)
	return res.Stdout, nil
}

// ParseListing turns tool output into entries, in the order printed.
// Empty lines are skipped. Each line is split on its first '=' only; a line
// without '=' or with an empty key is skipped with a warning. A trailing '\r'
// is dropped so CRLF output from the tool does not leak into values.
func ParseListing(ctx context.Context, listing []byte) []envutil.Entry {
	var entries []envutil.Entry
	for i, line := range envutil.SplitLines(string(listing)) {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		entry, ok := envutil.SplitEntry(line)
		if !ok {
			logger.Warn(ctx, "Skipping line %d of the vault listing: not a {{_Var_}}KEY=VALUE{{|-|}} pair.", i+1)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
