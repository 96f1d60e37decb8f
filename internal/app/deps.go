// Where: internal/app/deps.go
// What: Injected collaborators for the runner.
// Why: Keep prompts, probes and the command engine swappable in tests.
package app

import (
	"io"

	"github.com/translate/pootle/internal/checks"
	"github.com/translate/pootle/internal/command"
	"github.com/translate/pootle/internal/config"
	"github.com/translate/pootle/internal/interaction"
	"github.com/translate/pootle/internal/rq"
)

// Dependencies holds all injected dependencies required for runner
// execution. Zero values fall back to the real implementations.
type Dependencies struct {
	Out        io.Writer
	In         io.Reader
	RunnerName string

	Confirm       interaction.ConfirmFunc
	ProbeFactory  func(*config.Settings) rq.WorkerProbe
	EngineFactory func(*config.Settings, *rq.Registry, rq.WorkerProbe, io.Writer) command.Executor
}

// confirmFunc resolves the confirmation prompt, preferring an injected
// function, then an injected reader, then the interactive default.
func (d Dependencies) confirmFunc(out io.Writer) interaction.ConfirmFunc {
	if d.Confirm != nil {
		return d.Confirm
	}
	if d.In != nil {
		in := d.In
		return func(message string) (bool, error) {
			return interaction.PromptYesNoWithIO(in, out, message)
		}
	}
	return interaction.PromptYesNo
}

// workerProbe resolves the worker-liveness probe for the configured
// default queue. The returned func releases a probe built here.
func (d Dependencies) workerProbe(settings *config.Settings) (rq.WorkerProbe, func()) {
	if d.ProbeFactory != nil {
		return d.ProbeFactory(settings), func() {}
	}
	probe := rq.NewRedisWorkerProbe(settings.DefaultQueue())
	return probe, func() { probe.Close() }
}

// engine resolves the management-command engine. The default engine
// carries the built-in commands.
func (d Dependencies) engine(settings *config.Settings, reg *rq.Registry, probe rq.WorkerProbe, out io.Writer) command.Executor {
	if d.EngineFactory != nil {
		return d.EngineFactory(settings, reg, probe, out)
	}
	engine := command.NewEngine(out)
	engine.Register(checkCommand(settings, probe, out))
	return engine
}

// checkCommand wires the diagnostics, reusing the worker probe's redis
// client instead of opening a second pool. Injected probes leave the
// command to build its own connection from the settings.
func checkCommand(settings *config.Settings, probe rq.WorkerProbe, out io.Writer) *checks.Command {
	cmd := &checks.Command{Settings: settings, Out: out}
	if redisProbe, ok := probe.(*rq.RedisWorkerProbe); ok {
		cmd.Redis = checks.StatusFromClient(redisProbe.Client())
	}
	return cmd
}
