// Where: internal/checks/command.go
// What: The `check` management command.
package checks

import (
	"context"
	"fmt"
	"io"

	"github.com/translate/pootle/internal/command"
	"github.com/translate/pootle/internal/config"
)

// Command wires the diagnostics into the management-command engine.
type Command struct {
	Settings *config.Settings
	Redis    RedisStatus
	Out      io.Writer
}

func (c *Command) Name() string { return "check" }

func (c *Command) ShortHelp() string {
	return "Inspect the installation for common problems"
}

// Run evaluates every diagnostic and reports the findings. Critical
// findings fail the command.
func (c *Command) Run(ctx context.Context, args []string) error {
	status := c.Redis
	if status == nil {
		server := NewServerStatus(c.Settings.DefaultQueue())
		defer server.Close()
		status = server
	}

	critical := Report(c.Out, RunAll(ctx, c.Settings, status))
	if critical > 0 {
		noun := "issues"
		if critical == 1 {
			noun = "issue"
		}
		return command.Errorf("System check identified %d critical %s.", critical, noun)
	}
	return nil
}

// Report writes the findings and returns the number of critical ones.
func Report(out io.Writer, results []Result) int {
	if len(results) == 0 {
		fmt.Fprintln(out, "System check identified no issues.")
		return 0
	}

	critical := 0
	for _, result := range results {
		fmt.Fprintf(out, "%s (%s): %s\n", result.ID, result.Level, result.Msg)
		if result.Hint != "" {
			fmt.Fprintf(out, "\tHINT: %s\n", result.Hint)
		}
		if result.Level == Critical {
			critical++
		}
	}
	return critical
}
