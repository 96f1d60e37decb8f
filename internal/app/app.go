// Where: internal/app/app.go
// What: Runner entrypoint logic.
// Why: Provide a testable bootstrap and dispatch path; main only exits.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/translate/pootle/internal/command"
	"github.com/translate/pootle/internal/config"
	"github.com/translate/pootle/internal/meta"
	"github.com/translate/pootle/internal/rq"
	"github.com/translate/pootle/internal/version"
)

// cacheGateMessage blocks dispatch until the mandatory cache namespaces
// are configured.
const cacheGateMessage = "\nYou need to configure the caches setting in %s: " +
	"the 'redis' and 'stats' caches must both be defined.\n\n" +
	"Once you have fixed the caches setting you should run 'pootle check' again\n\n"

// Run is the main entry point for runner execution. It resolves the
// configuration, applies the runtime-mode flags and dispatches the
// remaining arguments to the management-command engine. The returned
// status is the process exit code.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.RunnerName == "" {
		deps.RunnerName = meta.AppName
	}

	loadDotEnv(out)

	opts, err := parseBootstrapArgs(args)
	if err != nil {
		return exitWithError(out, err)
	}

	if opts.Version {
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	if name, idx := firstPositional(args); name == "init" {
		flags := append(append([]string{}, args[:idx]...), args[idx+1:]...)
		return runInit(flags, deps, out)
	}

	rc, err := config.Configure(meta.AppName, opts.ConfigPath, meta.DefaultSettingsModule, deps.RunnerName)
	if err != nil {
		return exitWithError(out, err)
	}

	settingsPath := os.Getenv(rc.EnvVar)
	if settingsPath == "" {
		settingsPath = rc.Path
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return exitWithError(out, err)
	}

	if !cachesConfigured(settings) {
		fmt.Fprintf(out, cacheGateMessage, opts.ConfigPath)
		return 2
	}

	registry := rq.NewRegistry(settings)
	probe, closeProbe := deps.workerProbe(settings)
	defer closeProbe()

	if opts.NoRQ {
		err := rq.ForceSyncMode(context.Background(), registry, probe, opts.NoInput, deps.confirmFunc(out), out)
		if err != nil {
			return exitWithError(out, err)
		}
	}

	if len(opts.Remainder) == 1 && isHelpFlag(opts.Remainder[0]) {
		printBootstrapHelp(deps.RunnerName, out)
	}

	vector := append([]string{deps.RunnerName}, opts.Remainder...)
	if opts.NoInput {
		vector = append(vector, "--noinput")
	}

	engine := deps.engine(settings, registry, probe, out)
	return engine.Execute(vector)
}

// cachesConfigured reports whether both mandatory cache namespaces are
// present in the settings.
func cachesConfigured(settings *config.Settings) bool {
	_, stats := settings.Caches[meta.CacheStats]
	_, redis := settings.Caches[meta.CacheRedis]
	return stats && redis
}

// loadDotEnv loads ./.env when present. Pre-set process variables always
// win over file values.
func loadDotEnv(out io.Writer) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
	}
}

// exitWithError prints the diagnostic and derives the process exit code
// from the error kind. Command errors keep their conventional prefix.
func exitWithError(out io.Writer, err error) int {
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		fmt.Fprintf(out, "CommandError: %s\n", cmdErr.Error())
	} else {
		fmt.Fprintln(out, err)
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
