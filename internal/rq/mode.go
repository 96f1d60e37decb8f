// Where: internal/rq/mode.go
// What: Forced synchronous-mode switch with a worker-safety gate.
// Why: Inline job execution next to live workers can run jobs twice.
package rq

import (
	"context"
	"fmt"
	"io"

	"github.com/translate/pootle/internal/interaction"
)

// workerWarning is printed before any forced switch while workers are
// attached.
const workerWarning = "\nYou currently have RQ workers running.\n\n" +
	"Running in synchronous mode may conflict with jobs that are " +
	"dispatched to your workers.\n\n" +
	"It is safer to stop any workers before using synchronous " +
	"commands.\n\n"

// DeclinedError reports a refused synchronous switch while workers are
// attached. No queue was mutated.
type DeclinedError struct{}

func (e *DeclinedError) Error() string {
	return "RQ workers running, not proceeding."
}

// ExitCode matches the declined-unsafe-operation contract.
func (e *DeclinedError) ExitCode() int { return 2 }

// ForceSyncMode switches every managed queue to synchronous execution.
//
// When workers are attached the switch is gated: interactively it asks for
// confirmation first and leaves every queue untouched on decline; with
// noinput it prints the warning and proceeds. A failed probe counts as "no
// workers attached" so deployments without redis can still force
// synchronous mode.
func ForceSyncMode(ctx context.Context, reg *Registry, probe WorkerProbe, noinput bool, confirm interaction.ConfirmFunc, out io.Writer) error {
	running := false
	if probe != nil {
		if r, err := probe.WorkersRunning(ctx); err == nil {
			running = r
		}
	}

	if running {
		if noinput {
			fmt.Fprintf(out, "Warning: %s", workerWarning)
		} else {
			if confirm == nil {
				confirm = interaction.PromptYesNo
			}
			proceed, err := confirm(workerWarning + "Do you wish to proceed?")
			if err != nil {
				return fmt.Errorf("confirm mode switch: %w", err)
			}
			if !proceed {
				return &DeclinedError{}
			}
		}
	}

	reg.ForceSync()
	return nil
}
