package exec

import (
	"VaultSync/internal/logger"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait keeps reading output after the command was
// killed, in case a child process still holds the pipes open.
const waitDelay = 2 * time.Second

// Result holds what a finished command wrote and how it exited.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int // -1 when the command never started or was killed by a signal
}

// CommandText renders a command line for logging.
func CommandText(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}

// RunCapture executes a command with stdout and stderr captured separately.
//
// The returned error is non-nil when the command could not be found or started,
// or exited non-zero. In the latter case it wraps the *exec.ExitError and the
// Result still carries both output streams.
func RunCapture(ctx context.Context, runningNoticeType, command string, args ...string) (Result, error) {
	res := Result{ExitCode: -1}

	if runningNoticeType != "" {
		logByType(ctx, runningNoticeType, "Running: {{_RunningCommand_}}%s{{|-|}}", CommandText(command, args...))
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return res, fmt.Errorf("%s is not installed: %w", command, err)
	}

	// #nosec G204
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = os.Environ()
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("command cancelled: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("command failed: %w", err)
		}
		return res, fmt.Errorf("command could not run: %w", err)
	}
	return res, nil
}

// LogLines logs every non-empty line of output.
// outputNoticeType can include a prefix, like "vault:warn" or "vault:debug".
func LogLines(ctx context.Context, outputNoticeType string, output []byte) {
	if outputNoticeType == "" || len(output) == 0 {
		return
	}

	prefix := ""
	noticeType := outputNoticeType
	if p, t, ok := strings.Cut(outputNoticeType, ":"); ok {
		prefix = p + ":"
		noticeType = t
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if prefix != "" {
			logByType(ctx, noticeType, "{{_RunningCommand_}}%s{{|-|}} %s", prefix, line)
		} else {
			logByType(ctx, noticeType, "%s", line)
		}
	}
}

// logByType logs a message with the appropriate logger function based on type
func logByType(ctx context.Context, noticeType string, format string, args ...any) {
	switch strings.ToLower(noticeType) {
	case "notice":
		logger.Notice(ctx, format, args...)
	case "info":
		logger.Info(ctx, format, args...)
	case "warn", "warning":
		logger.Warn(ctx, format, args...)
	case "error":
		logger.Error(ctx, format, args...)
	case "debug":
		logger.Debug(ctx, format, args...)
	default:
		logger.Notice(ctx, format, args...)
	}
}
