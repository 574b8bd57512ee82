package envutil

import (
	"os"
	"strings"
)

// Entry is a single KEY=VALUE assignment.
type Entry struct {
	Key   string
	Value string
}

// Line renders the entry as it is written to an env file.
func (e Entry) Line() string {
	return e.Key + "=" + e.Value
}

// SplitEntry splits line on its first '=' only, so the value keeps any further
// '=' verbatim. It returns false when the line has no '=' or an empty key.
func SplitEntry(line string) (Entry, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok || key == "" {
		return Entry{}, false
	}
	return Entry{Key: key, Value: value}, true
}

// SplitLines splits file content into lines without their '\n' terminators.
// A final terminator does not produce a trailing empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines; every line gets a '\n' terminator.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// ReadAllLines reads every line of a file verbatim, comments and blanks included.
func ReadAllLines(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(data)), nil
}
