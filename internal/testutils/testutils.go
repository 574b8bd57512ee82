// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// SkipWithoutShell skips tests that need a POSIX shell to run fake tools.
func SkipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake vault tool requires a POSIX shell")
	}
}

// FakeVaultTool writes an executable script that prints listing on stdout,
// records its arguments and exits with exitCode. A non-zero exit also prints
// an error on stderr. It returns the absolute path of the script.
func FakeVaultTool(t *testing.T, listing string, exitCode int) string {
	t.Helper()
	dir := t.TempDir()

	listingFile := filepath.Join(dir, "listing")
	if err := os.WriteFile(listingFile, []byte(listing), 0600); err != nil {
		t.Fatal(err)
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "printf '%%s\\n' \"$@\" > '%s'\n", filepath.Join(dir, "args"))
	fmt.Fprintf(&script, "cat '%s'\n", listingFile)
	if exitCode != 0 {
		script.WriteString("echo 'permission denied' >&2\n")
	}
	fmt.Fprintf(&script, "exit %d\n", exitCode)

	tool := filepath.Join(dir, "fake-vault")
	if err := os.WriteFile(tool, []byte(script.String()), 0755); err != nil {
		t.Fatal(err)
	}
	return tool
}

// SlowVaultTool writes an executable script that sleeps far longer than any
// test waits, for exercising cancellation. It returns the script path.
func SlowVaultTool(t *testing.T) string {
	t.Helper()
	tool := filepath.Join(t.TempDir(), "slow-vault")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nexec sleep 60\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return tool
}

// FakeVaultToolArgs returns the arguments of the last FakeVaultTool invocation.
func FakeVaultToolArgs(t *testing.T, tool string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(tool), "args"))
	if err != nil {
		t.Fatalf("fake vault tool was not run: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// WriteEnvFile creates name inside a fresh temp dir with content and returns its path.
func WriteEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// DirEntries lists the names in dir, failing the test on error.
func DirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
