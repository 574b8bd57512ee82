package env

import (
	"VaultSync/internal/constants"
	"VaultSync/internal/envutil"
	"VaultSync/internal/logger"
	"VaultSync/internal/system"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Options control a Sync.
type Options struct {
	// DryRun computes the merge and its diff without touching the file system.
	DryRun bool
	// ShowValues prints secret values in the diff instead of redacting them.
	ShowValues bool
	// LockWait bounds how long to wait for a concurrent run. Zero tries once.
	LockWait time.Duration
}

// Result describes a finished Sync.
type Result struct {
	Report
	Diff    string // set for dry runs
	Written bool   // the file was replaced
}

// Sync merges entries into file.
//
// The file is created empty if missing, read once, merged in memory, written to
// a private temp file in the same directory and renamed over the original. A
// failure before the rename leaves the original untouched and removes the temp
// file. When the merged content equals the current content nothing is written.
func Sync(ctx context.Context, file string, entries []envutil.Entry, opts Options) (Result, error) {
	var res Result

	if opts.DryRun {
		lines, err := envutil.ReadAllLines(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("reading %s: %w", file, err)
		}
		merged, report := Merge(lines, entries)
		res.Report = report
		render := RedactValue
		if opts.ShowValues {
			render = nil
		}
		res.Diff = Diff(lines, merged, render)
		return res, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), constants.DirMode); err != nil {
		return res, fmt.Errorf("creating directory for %s: %w", file, err)
	}

	lock, err := AcquireLock(ctx, file, opts.LockWait)
	if err != nil {
		return res, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn(ctx, "Failed to release lock on '{{_File_}}%s{{|-|}}': %v", file, err)
		}
	}()

	info, err := ensureFile(ctx, file)
	if err != nil {
		return res, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", file, err)
	}
	lines := envutil.SplitLines(string(data))

	merged, report := Merge(lines, entries)
	res.Report = report

	content := envutil.JoinLines(merged)
	if content == string(data) {
		logger.Debug(ctx, "Merged content matches '{{_File_}}%s{{|-|}}'; not rewriting.", file)
		return res, nil
	}

	if err := replaceFile(ctx, file, []byte(content), info); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// ensureFile creates file empty if it does not exist and returns its info.
func ensureFile(ctx context.Context, file string) (os.FileInfo, error) {
	info, err := os.Stat(file)
	if err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", file)
		}
		return info, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	logger.Info(ctx, "Creating '{{_File_}}%s{{|-|}}'.", file)
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY, constants.NewEnvFileMode)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return os.Stat(file)
}

// replaceFile writes content to a temp file next to file and renames it into place.
func replaceFile(ctx context.Context, file string, content []byte, info os.FileInfo) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(file), constants.TempFilePattern)
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", file, err)
	}
	tmpName := tmp.Name()
	logger.Debug(ctx, "Writing merged lines to '{{_File_}}%s{{|-|}}'.", tmpName)

	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logger.Warn(ctx, "Failed to remove temp file '{{_File_}}%s{{|-|}}': %v", tmpName, rmErr)
			}
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = system.MatchPermissions(ctx, tmpName, info); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, file); err != nil {
		return fmt.Errorf("replacing %s: %w", file, err)
	}
	return nil
}
