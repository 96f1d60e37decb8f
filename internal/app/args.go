// Where: internal/app/args.go
// What: Pre-parse scan of the argument vector.
// Why: Bootstrap flags are recognized anywhere; everything else is
//      forwarded verbatim to the management-command engine.
package app

import (
	"fmt"
	"strings"

	"github.com/translate/pootle/internal/meta"
)

// bootstrapOptions are the runner's own flags, extracted from anywhere in
// the argument vector. Remainder preserves every unrecognized argument in
// its original order.
type bootstrapOptions struct {
	ConfigPath string
	NoInput    bool
	NoRQ       bool
	Version    bool
	Remainder  []string
}

func parseBootstrapArgs(args []string) (bootstrapOptions, error) {
	opts := bootstrapOptions{ConfigPath: meta.DefaultSettingsPath}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("flag --config: expected one argument")
			}
			i++
			opts.ConfigPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--noinput":
			opts.NoInput = true
		case arg == "--no-rq":
			opts.NoRQ = true
		case arg == "--version":
			opts.Version = true
		default:
			opts.Remainder = append(opts.Remainder, arg)
		}
	}
	return opts, nil
}

// firstPositional returns the first non-flag argument and its index,
// skipping the value of --config. Index is -1 when there is none.
func firstPositional(args []string) (string, int) {
	skipNext := false
	for i, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if arg == "--config" {
				skipNext = true
			}
			continue
		}
		return arg, i
	}
	return "", -1
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}
