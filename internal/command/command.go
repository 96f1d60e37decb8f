// Where: internal/command/command.go
// What: Management-command engine: registry, dispatch, command errors.
// Why: Give the runner a narrow execution collaborator it hands argv to.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
)

// Error is a user-facing command failure. The exit boundary prints it
// without a stack trace and maps it to exit code 1.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Command is a single management command.
type Command interface {
	Name() string
	ShortHelp() string
	Run(ctx context.Context, args []string) error
}

// Executor runs an assembled command vector and reports its exit status.
type Executor interface {
	Execute(argv []string) int
}

// Engine dispatches management commands by name.
type Engine struct {
	out      io.Writer
	commands map[string]Command
}

// NewEngine returns an Engine writing human output to out.
func NewEngine(out io.Writer) *Engine {
	return &Engine{out: out, commands: map[string]Command{}}
}

// Register adds a command to the engine. Later registrations win.
func (e *Engine) Register(cmd Command) {
	e.commands[cmd.Name()] = cmd
}

// Execute runs the command named by argv[1]; argv[0] is the runner name.
// With no subcommand, or an explicit help request, it prints the command
// listing and returns 0.
func (e *Engine) Execute(argv []string) int {
	runner := programName(argv)
	if len(argv) < 2 || isHelpToken(argv[1]) {
		e.printUsage(runner)
		return 0
	}

	name := argv[1]
	cmd, ok := e.commands[name]
	if !ok {
		fmt.Fprintf(e.out, "Unknown command: %q\nType '%s help' for usage.\n", name, runner)
		return 1
	}

	if err := cmd.Run(context.Background(), argv[2:]); err != nil {
		var cmdErr *Error
		if errors.As(err, &cmdErr) {
			fmt.Fprintf(e.out, "CommandError: %s\n", cmdErr.Error())
		} else {
			fmt.Fprintln(e.out, err)
		}
		return 1
	}
	return 0
}

func (e *Engine) printUsage(runner string) {
	fmt.Fprintf(e.out, "Usage: %s [options] command [command options]\n", runner)
	if len(e.commands) == 0 {
		return
	}
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprint(e.out, "\nAvailable commands:\n")
	for _, name := range names {
		fmt.Fprintf(e.out, "    %-12s %s\n", name, e.commands[name].ShortHelp())
	}
}

func programName(argv []string) string {
	if len(argv) == 0 || argv[0] == "" {
		return "pootle"
	}
	return filepath.Base(argv[0])
}

func isHelpToken(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}
