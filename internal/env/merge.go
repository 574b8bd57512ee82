package env

import (
	"VaultSync/internal/envutil"
)

// Report lists the keys a merge touched. It never carries values.
type Report struct {
	Added        []string // appended at the end
	Updated      []string // rewritten in place with a new value
	Unchanged    []string // already held the fetched value
	Deduplicated []string // had extra lines for the same key removed
}

// Changed reports whether the merge altered any line.
func (r Report) Changed() bool {
	return len(r.Added) > 0 || len(r.Updated) > 0 || len(r.Deduplicated) > 0
}

type mergeLine struct {
	text    string
	dropped bool
}

// Merge overlays entries onto lines and returns the merged lines.
// lines is not modified.
func Merge(lines []string, entries []envutil.Entry) ([]string, Report) {
	out := make([]mergeLine, len(lines))
	// Keys never contain '=', so "line starts with KEY=" is the same as
	// "the text before the line's first '=' is KEY".
	positions := make(map[string][]int)
	for i, line := range lines {
		out[i] = mergeLine{text: line}
		if entry, ok := envutil.SplitEntry(line); ok {
			positions[entry.Key] = append(positions[entry.Key], i)
		}
	}

	var order []string
	original := make(map[string]string) // first pre-existing line per fetched key
	added := make(map[string]bool)
	deduped := make(map[string]bool)
	target := make(map[string]int) // line holding each fetched key

	for _, entry := range entries {
		if i, ok := target[entry.Key]; ok {
			// Fetched again: last write wins
			out[i].text = entry.Line()
			continue
		}
		order = append(order, entry.Key)

		existing := positions[entry.Key]
		if len(existing) == 0 {
			out = append(out, mergeLine{text: entry.Line()})
			target[entry.Key] = len(out) - 1
			added[entry.Key] = true
			continue
		}

		first := existing[0]
		original[entry.Key] = out[first].text
		out[first].text = entry.Line()
		target[entry.Key] = first
		for _, dup := range existing[1:] {
			out[dup].dropped = true
			deduped[entry.Key] = true
		}
	}

	var report Report
	for _, key := range order {
		switch {
		case added[key]:
			report.Added = append(report.Added, key)
		case out[target[key]].text != original[key]:
			report.Updated = append(report.Updated, key)
		default:
			report.Unchanged = append(report.Unchanged, key)
		}
		if deduped[key] {
			report.Deduplicated = append(report.Deduplicated, key)
		}
	}

	merged := make([]string, 0, len(out))
	for _, l := range out {
		if !l.dropped {
			merged = append(merged, l.text)
		}
	}
	return merged, report
}
