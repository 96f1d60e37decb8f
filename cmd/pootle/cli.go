// Where: cmd/pootle/cli.go
// What: Dependency wiring for the runner.
// Why: Centralize construction for testability.
package main

import (
	"os"
	"path/filepath"

	"github.com/translate/pootle/internal/app"
)

// buildDependencies constructs the runtime dependencies of the runner.
// The confirmation prompt, worker probe and command engine stay on their
// defaults; they are resolved from the loaded settings at run time.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:        os.Stdout,
		RunnerName: runnerName(os.Args),
	}
}

// runnerName mirrors the invoked program name into prompts, help output
// and the forwarded argument vector.
func runnerName(argv []string) string {
	if len(argv) == 0 || argv[0] == "" {
		return "pootle"
	}
	return filepath.Base(argv[0])
}
