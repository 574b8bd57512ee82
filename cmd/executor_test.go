package cmd

import (
	"VaultSync/internal/console"
	"VaultSync/internal/logger"
	"VaultSync/internal/paths"
	"VaultSync/internal/testutils"
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	paths.ConfigHomeOverride = t.TempDir()
	t.Cleanup(func() { paths.ConfigHomeOverride = "" })
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	opts, err := Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	var stdout bytes.Buffer
	code := Execute(context.Background(), opts, &stdout)
	return code, stdout.String()
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logger.NewHandler(&buf, logger.LevelVar, false)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestExecuteSync(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "A=2\nB=x=y\n", 0)
	file := testutils.WriteEnvFile(t, ".env", "# app\nA=1\nC=3\n")

	code, _ := run(t, "--tool", tool, "--vault-id", "app", "--file", file)
	if code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if got := testutils.ReadFile(t, file); got != "# app\nA=2\nC=3\nB=x=y\n" {
		t.Errorf("env file = %q", got)
	}
	args := testutils.FakeVaultToolArgs(t, tool)
	if strings.Join(args, " ") != "secret list app -o env" {
		t.Errorf("tool args = %q", args)
	}
}

func TestExecuteFetchFailureLeavesFileUntouched(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "A=99\n", 2)
	file := testutils.WriteEnvFile(t, ".env", "A=1\n")

	code, out := run(t, "--tool", tool, "--vault-id", "billing", "--file", file)
	if code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if got := testutils.ReadFile(t, file); got != "A=1\n" {
		t.Errorf("env file modified after fetch failure: %q", got)
	}
	if !strings.Contains(out, `failed to fetch secrets for "billing"`) || !strings.Contains(out, file) {
		t.Errorf("fetch failure not reported on stdout, got %q", out)
	}
}

func TestExecuteCancelledLeavesFileUntouched(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.SlowVaultTool(t)
	file := testutils.WriteEnvFile(t, ".env", "A=1\n")

	opts, err := Parse([]string{"--tool", tool, "--file", file})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	defer cancel()

	if code := Execute(ctx, opts, &bytes.Buffer{}); code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if got := testutils.ReadFile(t, file); got != "A=1\n" {
		t.Errorf("env file modified after cancel: %q", got)
	}
	if _, err := os.Stat(paths.GetLockFilePath(file)); !os.IsNotExist(err) {
		t.Errorf("lock file created after cancel")
	}
}

func TestExecuteMissingTrailingNewline(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)
	logs := captureLogs(t)

	tool := testutils.FakeVaultTool(t, "A=1\n", 0)
	file := testutils.WriteEnvFile(t, ".env", "A=1")

	if code, _ := run(t, "--tool", tool, "--file", file); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if got := testutils.ReadFile(t, file); got != "A=1\n" {
		t.Errorf("env file = %q; want trailing newline added", got)
	}
	if strings.Contains(logs.String(), "up to date") {
		t.Errorf("rewritten file reported as up to date:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "trailing newline") {
		t.Errorf("rewrite not reported:\n%s", logs.String())
	}
}

func TestExecuteFetchFailureDoesNotCreateFile(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "", 1)
	file := filepath.Join(t.TempDir(), ".env")

	if code, _ := run(t, "--tool", tool, "--file", file); code != 1 {
		t.Fatalf("exit code = %d; want 1", code)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("env file created after fetch failure")
	}
	if _, err := os.Stat(paths.GetLockFilePath(file)); !os.IsNotExist(err) {
		t.Errorf("lock file created after fetch failure")
	}
}

func TestExecuteDryRun(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "A=topsecret\n", 0)
	file := testutils.WriteEnvFile(t, ".env", "A=1\n")

	code, out := run(t, "--tool", tool, "--file", file, "--dry-run")
	if code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if got := testutils.ReadFile(t, file); got != "A=1\n" {
		t.Errorf("dry run modified env file: %q", got)
	}
	if strings.Contains(out, "topsecret") {
		t.Errorf("dry run printed a secret value:\n%s", out)
	}
	if !strings.Contains(out, "+A=<redacted>") {
		t.Errorf("dry run output missing change:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("dry run output to a non-terminal contains escape codes:\n%q", out)
	}
}

func TestExecuteDryRunShowsValuesVerbatim(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "A={{_File_}}x{{|-|}}\n", 0)
	file := testutils.WriteEnvFile(t, ".env", "# {{|red|}} stays\nA=1\n")

	code, out := run(t, "--tool", tool, "--file", file, "--dry-run", "--show-values")
	if code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	for _, want := range []string{" # {{|red|}} stays\n", "-A=1\n", "+A={{_File_}}x{{|-|}}\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry run output missing %q:\n%s", want, out)
		}
	}
}

func TestColorDiff(t *testing.T) {
	diff := " # c\n-A=1\n+A={{_Var_}}2\n"
	if got := colorDiff(diff, false); got != diff {
		t.Errorf("colorDiff(color off) = %q; want input unchanged", got)
	}

	want := " # c\n" +
		console.Style("DiffDel") + "-A=1" + console.CodeReset + "\n" +
		console.Style("DiffAdd") + "+A={{_Var_}}2" + console.CodeReset + "\n"
	if got := colorDiff(diff, true); got != want {
		t.Errorf("colorDiff(color on) = %q; want %q", got, want)
	}
}

func TestExecuteUsesConfigFile(t *testing.T) {
	testutils.SkipWithoutShell(t)
	isolateConfig(t)

	tool := testutils.FakeVaultTool(t, "K=v\n", 0)
	file := filepath.Join(t.TempDir(), "configured.env")

	configPath := paths.GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	content := "[sync]\ntool = '" + tool + "'\nvault_id = 'configured'\nenv_file = '" + file + "'\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if code, _ := run(t); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if got := testutils.ReadFile(t, file); got != "K=v\n" {
		t.Errorf("env file = %q", got)
	}
	if args := testutils.FakeVaultToolArgs(t, tool); len(args) < 3 || args[2] != "configured" {
		t.Errorf("tool args = %q; want vault id from config", args)
	}
}

func TestExecuteBadConfig(t *testing.T) {
	isolateConfig(t)

	configPath := paths.GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("[sync\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if code, _ := run(t); code != 1 {
		t.Errorf("exit code = %d; want 1", code)
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	code, out := run(t, "--help")
	if code != 0 || !strings.Contains(out, "--vault-id") {
		t.Errorf("--help = %d, %q", code, out)
	}

	code, out = run(t, "-V")
	if code != 0 || !strings.Contains(out, "VaultSync") {
		t.Errorf("-V = %d, %q", code, out)
	}
}

func TestExecuteConfigShowAndSave(t *testing.T) {
	isolateConfig(t)

	code, out := run(t, "--config-show", "--vault-id", "shown")
	if code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if !strings.Contains(out, "vault_id = 'shown'") {
		t.Errorf("config output missing flag override:\n%s", out)
	}
	if _, err := os.Stat(paths.GetConfigFilePath()); !os.IsNotExist(err) {
		t.Errorf("--config-show must not write the config file")
	}

	if code, _ := run(t, "--config-save", "--vault-id", "saved"); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if got := testutils.ReadFile(t, paths.GetConfigFilePath()); !strings.Contains(got, "saved") {
		t.Errorf("saved config = %q", got)
	}
}
