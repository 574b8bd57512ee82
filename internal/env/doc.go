// Package env merges secret listings into dotenv files.
//
// An env file is an ordered list of lines. Lines of the form KEY=VALUE are
// entries; everything else (comments, blanks, malformed lines) is opaque and
// passed through unchanged.
//
// Key operations:
//
//   - Merge: overlay fetched entries onto existing lines (pure, no I/O)
//   - Sync: Merge against a file on disk and atomically replace it
//   - Diff: render the line changes a Sync would make
//
// Merge rules:
//
//   - Keys match literally against the start of a line ("KEY="), never as patterns
//   - An existing key is rewritten in place; later duplicate lines of it are dropped
//   - A new key is appended at the end, in fetched order
//   - A key fetched twice ends up with its last value
//   - Lines for keys that were not fetched keep their content and position
package env
