// Where: internal/app/help.go
// What: Bootstrap flag help for the merged `--help` output.
package app

import (
	"io"

	"github.com/alecthomas/kong"
)

// bootstrapCLI mirrors the flags of args.go for help rendering only; the
// actual parse is the hand scan, which tolerates unknown arguments.
type bootstrapCLI struct {
	Config  string `help:"Use the specified configuration file." placeholder:"PATH"`
	NoInput bool   `name:"noinput" help:"Never prompt for input."`
	NoRQ    bool   `name:"no-rq" help:"Run all jobs in a single process, without using rq workers."`
	Version bool   `help:"Show the version and exit."`
}

// printBootstrapHelp renders the runner's own flag help. The engine
// appends its command listing afterwards, producing the merged help.
func printBootstrapHelp(runnerName string, out io.Writer) {
	var cli bootstrapCLI
	parser, err := kong.New(&cli,
		kong.Name(runnerName),
		kong.Description("Pootle translation server runner."),
		kong.Writers(out, out),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return
	}
	parser.Parse([]string{"--help"})
}
