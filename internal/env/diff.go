package env

import (
	"VaultSync/internal/envutil"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Redacted replaces entry values in Diff output unless values are shown.
const Redacted = "<redacted>"

// RedactValue hides the value of a KEY=VALUE line; other lines are returned as is.
func RedactValue(line string) string {
	if entry, ok := envutil.SplitEntry(line); ok {
		return entry.Key + "=" + Redacted
	}
	return line
}

// Diff renders the line changes between before and after, one line per
// output line prefixed with "-", "+" or " ". render, when non-nil, is applied
// to every line before it is printed.
func Diff(before, after []string, render func(string) string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(envutil.JoinLines(before), envutil.JoinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range envutil.SplitLines(d.Text) {
			if render != nil {
				line = render(line)
			}
			out.WriteString(prefix + line + "\n")
		}
	}
	return out.String()
}
