package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"

	// Foreground
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeRedBg = "\033[41m"
)

// styleCodes maps the names usable inside {{|...|}} tags to ANSI codes.
// A style is written fg:bg:flags, e.g. "cyan::b" or "white:red".
var styleCodes = map[string]string{
	"-":       CodeReset,
	"reset":   CodeReset,
	"red":     CodeRed,
	"green":   CodeGreen,
	"yellow":  CodeYellow,
	"blue":    CodeBlue,
	"magenta": CodeMagenta,
	"cyan":    CodeCyan,
	"white":   CodeWhite,
	"redbg":   CodeRedBg,
	"b":       CodeBold,
	"d":       CodeDim,
	"u":       CodeUnderline,
}

// semanticStyles maps semantic tag names (lowercase) to styles.
var semanticStyles = map[string]string{
	"applicationname":        "cyan::b",
	"file":                   "cyan::b",
	"program":                "cyan",
	"runningcommand":         "green::b",
	"usercommand":            "yellow::b",
	"usercommanderror":       "red::u",
	"usercommanderrormarker": "red",
	"var":                    "magenta",
	"vault":                  "cyan",
	"version":                "cyan",
	"diffadd":                "green",
	"diffdel":                "red",
}
