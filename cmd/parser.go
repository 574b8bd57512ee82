package cmd

import (
	"VaultSync/internal/config"
	"VaultSync/internal/version"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError wraps argument parsing errors, pointing at the failing argument
type ParseError struct {
	Args    []string // The full argument list passed to Parse
	Index   int      // The index where the error occurred
	Message string   // The specific error message; %o is replaced by the failing option
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName)}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		if i == e.Index {
			cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", e.Args[i]))
		} else {
			cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", e.Args[i]))
		}
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// Indent + ' + command + space + previous args
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	formattedMsg := strings.ReplaceAll(e.Message, "%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt))

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)
	out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	return out
}

// Options is the parsed command line.
type Options struct {
	VaultID     string
	EnvFile     string
	Tool        string
	LockTimeout string

	DryRun     bool
	ShowValues bool
	ConfigShow bool
	ConfigSave bool

	Verbose bool
	Debug   bool
	Version bool
	Help    bool

	changed map[string]bool
}

// Changed reports whether the flag was given on the command line.
func (o Options) Changed(name string) bool {
	return o.changed[name]
}

// Apply overlays the flags that were given onto conf and re-resolves it.
func (o Options) Apply(conf *config.AppConfig) error {
	if o.Changed("vault-id") {
		conf.Sync.VaultID = o.VaultID
	}
	if o.Changed("file") {
		conf.Sync.EnvFile = o.EnvFile
	}
	if o.Changed("tool") {
		conf.Sync.Tool = o.Tool
	}
	if o.Changed("lock-timeout") {
		conf.Sync.LockTimeout = o.LockTimeout
	}
	return conf.Resolve()
}

var (
	longFlagRegex  = regexp.MustCompile(`--([A-Za-z0-9][A-Za-z0-9-]*)`)
	shortFlagRegex = regexp.MustCompile(`'(.)' in (-\S+)`)
)

// Parse parses the raw command line arguments. Running without arguments is valid
// and syncs with the configured defaults.
func Parse(args []string) (Options, error) {
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return Options{}, &ParseError{Args: args, Index: failingIndex(args, err.Error()), Message: capitalize(err.Error()) + "."}
	}
	if fs.NArg() > 0 {
		return Options{}, &ParseError{Args: args, Index: positionalIndex(fs, args), Message: "Unexpected argument %o; this command takes no positional arguments."}
	}

	opts := Options{changed: make(map[string]bool)}
	opts.VaultID, _ = fs.GetString("vault-id")
	opts.EnvFile, _ = fs.GetString("file")
	opts.Tool, _ = fs.GetString("tool")
	opts.LockTimeout, _ = fs.GetString("lock-timeout")
	opts.DryRun, _ = fs.GetBool("dry-run")
	opts.ShowValues, _ = fs.GetBool("show-values")
	opts.ConfigShow, _ = fs.GetBool("config-show")
	opts.ConfigSave, _ = fs.GetBool("config-save")
	opts.Verbose, _ = fs.GetBool("verbose")
	opts.Debug, _ = fs.GetBool("debug")
	opts.Version, _ = fs.GetBool("version")
	opts.Help, _ = fs.GetBool("help")

	for _, name := range []string{"vault-id", "file", "tool", "lock-timeout"} {
		opts.changed[name] = fs.Changed(name)
	}
	if opts.Changed("vault-id") && strings.TrimSpace(opts.VaultID) == "" {
		return Options{}, &ParseError{Args: args, Index: flagIndex(args, "vault-id", "i"), Message: "Option %o needs a non-empty vault identifier."}
	}
	return opts, nil
}

// failingIndex finds the argument a pflag error message refers to.
func failingIndex(args []string, msg string) int {
	if m := shortFlagRegex.FindStringSubmatch(msg); m != nil {
		for i, arg := range args {
			if arg == m[2] {
				return i
			}
		}
	}
	if m := longFlagRegex.FindStringSubmatch(msg); m != nil {
		if i := flagIndex(args, m[1], ""); i < len(args) {
			return i
		}
	}
	if len(args) == 0 {
		return 0
	}
	return len(args) - 1
}

// positionalIndex returns the index of the first argument that is neither a
// flag nor a flag's value.
func positionalIndex(fs *pflag.FlagSet, args []string) int {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			if i+1 < len(args) {
				return i + 1
			}
			return i
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			if f := fs.Lookup(name); f != nil && !hasValue && f.NoOptDefVal == "" {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			// Shorthand group: a value-taking flag consumes the rest of the
			// group, or the next argument when it ends the group.
			for j := 1; j < len(arg); j++ {
				f := fs.ShorthandLookup(arg[j : j+1])
				if f == nil || f.NoOptDefVal != "" {
					continue
				}
				if j == len(arg)-1 {
					i++
				}
				break
			}
		default:
			return i
		}
	}
	return len(args) - 1
}

// flagIndex returns the index of the last use of a flag, or len(args) if absent.
func flagIndex(args []string, long, short string) int {
	index := len(args)
	for i, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		if name == "--"+long || (short != "" && strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && strings.HasSuffix(name, short)) {
			index = i
		}
	}
	return index
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
