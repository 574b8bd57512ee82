package console

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct style codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-]+)\|\}\}`)

	colorEnabled bool
)

func init() {
	colorEnabled = IsTerminal(os.Stderr) && termenv.EnvColorProfile() != termenv.Ascii
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether Parse emits ANSI codes.
func ColorEnabled() bool {
	return colorEnabled
}

// WriterColorEnabled reports whether output written directly to w should be
// coloured. Only terminals qualify; pipes and files never get escape codes.
func WriterColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && IsTerminal(f) && termenv.EnvColorProfile() != termenv.Ascii
}

// SetColorEnabled forces colour output on or off (useful for testing).
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// Parse converts semantic and direct tags to ANSI escape sequences, or strips
// them when colour is disabled.
//   - {{_Tag_}}  : semantic lookup
//   - {{|code|}} : direct fg:bg:flags style
func Parse(text string) string {
	if !colorEnabled {
		return Strip(text)
	}
	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.ToLower(match[3 : len(match)-3])
		style, ok := semanticStyles[name]
		if !ok {
			return ""
		}
		return styleToANSI(style)
	})
	return directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return styleToANSI(match[3 : len(match)-3])
	})
}

// Strip removes all semantic and direct tags from text, as well as ANSI escape sequences
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return ansi.Strip(text)
}

// Style returns the ANSI sequence for a semantic tag name, or "" if unknown.
// Unlike Parse it does not depend on whether colour is enabled.
func Style(tag string) string {
	style, ok := semanticStyles[strings.ToLower(tag)]
	if !ok {
		return ""
	}
	return styleToANSI(style)
}

func styleToANSI(style string) string {
	if style == "-" {
		return CodeReset
	}
	var b strings.Builder
	parts := strings.SplitN(style, ":", 3)
	if parts[0] != "" {
		b.WriteString(styleCodes[strings.ToLower(parts[0])])
	}
	if len(parts) > 1 && parts[1] != "" {
		b.WriteString(styleCodes[strings.ToLower(parts[1])+"bg"])
	}
	if len(parts) > 2 {
		for _, flag := range parts[2] {
			b.WriteString(styleCodes[string(flag)])
		}
	}
	return b.String()
}
