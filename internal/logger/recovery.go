package logger

import (
	"context"
	"runtime/debug"
)

// Recover traps panics and reports whether the run must exit non-zero.
// Intentional FatalError panics have already been logged; anything else is logged
// here with its stack.
// Usage: defer func() { failed = logger.Recover(ctx, recover()) }()
func Recover(ctx context.Context, r any) bool {
	if r == nil {
		return false
	}
	if _, ok := r.(FatalError); ok {
		return true
	}

	// Suppress further panics while reporting
	defer func() { _ = recover() }()
	Error(ctx, "panic: %v\n%s", r, debug.Stack())
	return true
}
