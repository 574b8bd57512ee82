package cmd

import (
	"VaultSync/internal/config"
	"VaultSync/internal/console"
	"VaultSync/internal/env"
	"VaultSync/internal/logger"
	"VaultSync/internal/paths"
	"VaultSync/internal/vault"
	"VaultSync/internal/version"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Execute runs the parsed command line and returns the process exit code.
// Informational output (usage, version, config, dry-run diff) goes to stdout;
// everything else is logged.
func Execute(ctx context.Context, opts Options, stdout io.Writer) int {
	switch {
	case opts.Debug:
		logger.SetLevel(logger.LevelDebug)
	case opts.Verbose:
		logger.SetLevel(logger.LevelInfo)
	}

	if opts.Help {
		fmt.Fprint(stdout, console.Parse(GetUsage()))
		return 0
	}
	if opts.Version {
		fmt.Fprintf(stdout, "%s %s (commit %s, built %s)\n", version.ApplicationName, version.Version, version.Commit, version.BuildDate)
		return 0
	}

	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Error(ctx, "Failed to load '{{_File_}}%s{{|-|}}': %v", paths.GetConfigFilePath(), err)
		return 1
	}
	if err := opts.Apply(&conf); err != nil {
		logger.Error(ctx, "Invalid option: %v", err)
		return 1
	}

	if conf.Log.File != "" {
		l, err := logger.NewLogger(conf.Log.File)
		slog.SetDefault(l)
		if err != nil {
			logger.Warn(ctx, "Logging to '{{_File_}}%s{{|-|}}' is disabled: %v", conf.Log.File, err)
		}
	}

	if opts.ConfigShow || opts.ConfigSave {
		return executeConfig(ctx, conf, opts, stdout)
	}

	return executeSync(ctx, conf, opts, stdout)
}

func executeConfig(ctx context.Context, conf config.AppConfig, opts Options, stdout io.Writer) int {
	if opts.ConfigShow {
		data, err := config.Marshal(conf)
		if err != nil {
			logger.Error(ctx, "Failed to render configuration: %v", err)
			return 1
		}
		fmt.Fprintf(stdout, "# %s\n%s", paths.GetConfigFilePath(), data)
	}
	if opts.ConfigSave {
		if err := config.SaveAppConfig(conf); err != nil {
			logger.Error(ctx, "Failed to save '{{_File_}}%s{{|-|}}': %v", paths.GetConfigFilePath(), err)
			return 1
		}
		logger.Notice(ctx, "Saved configuration to '{{_File_}}%s{{|-|}}'.", paths.GetConfigFilePath())
	}
	return 0
}

func executeSync(ctx context.Context, conf config.AppConfig, opts Options, stdout io.Writer) int {
	file := conf.EnvFilePath

	logger.Info(ctx, "Fetching secrets for '{{_Vault_}}%s{{|-|}}'.", conf.Sync.VaultID)
	listing, err := vault.NewFetcher(conf.Sync.Tool).Fetch(ctx, conf.Sync.VaultID)
	if err != nil {
		var fetchErr *vault.FetchError
		if errors.As(err, &fetchErr) {
			logger.Error(ctx, "Failed to fetch secrets for '{{_Vault_}}%s{{|-|}}'. '{{_File_}}%s{{|-|}}' was not modified.", fetchErr.VaultID, file)
		}
		logger.Error(ctx, err.Error())
		fmt.Fprintf(stdout, "Error: failed to fetch secrets for %q; %s was not modified.\n", conf.Sync.VaultID, file)
		return 1
	}

	entries := vault.ParseListing(ctx, listing)
	logger.Debug(ctx, "Fetched %d entries.", len(entries))

	res, err := env.Sync(ctx, file, entries, env.Options{
		DryRun:     opts.DryRun,
		ShowValues: opts.ShowValues,
		LockWait:   conf.LockWait,
	})
	if err != nil {
		logger.Error(ctx, "Failed to update '{{_File_}}%s{{|-|}}': %v", file, err)
		return 1
	}

	if opts.DryRun {
		fmt.Fprint(stdout, colorDiff(res.Diff, console.WriterColorEnabled(stdout)))
	}
	logReport(ctx, file, res, opts.DryRun)
	return 0
}

func logReport(ctx context.Context, file string, res env.Result, dryRun bool) {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}
	if !res.Changed() {
		if res.Written {
			logger.Notice(ctx, "Rewrote '{{_File_}}%s{{|-|}}' with a trailing newline; no keys changed (%d keys checked).", file, len(res.Unchanged))
			return
		}
		logger.Notice(ctx, "'{{_File_}}%s{{|-|}}' is up to date (%d keys checked).", file, len(res.Unchanged))
		return
	}

	lines := []string{fmt.Sprintf("%s '{{_File_}}%s{{|-|}}':", verb, file)}
	for _, key := range res.Added {
		lines = append(lines, fmt.Sprintf("   added     {{_Var_}}%s{{|-|}}", key))
	}
	for _, key := range res.Updated {
		lines = append(lines, fmt.Sprintf("   updated   {{_Var_}}%s{{|-|}}", key))
	}
	for _, key := range res.Deduplicated {
		lines = append(lines, fmt.Sprintf("   deduped   {{_Var_}}%s{{|-|}}", key))
	}
	logger.Notice(ctx, lines)
	if len(res.Unchanged) > 0 {
		logger.Info(ctx, "Unchanged: {{_Var_}}%s{{|-|}}", strings.Join(res.Unchanged, ", "))
	}
}

// colorDiff colours added and removed lines. The diff body is file content and
// is never run through tag parsing, so it is printed exactly as merged.
func colorDiff(diff string, color bool) string {
	if !color {
		return diff
	}
	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		style := ""
		switch line[0] {
		case '+':
			style = console.Style("DiffAdd")
		case '-':
			style = console.Style("DiffDel")
		}
		if style == "" {
			sb.WriteString(line)
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		sb.WriteString(style + body + console.CodeReset)
		if nl {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
