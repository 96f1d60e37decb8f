// Where: internal/interaction/interaction.go
// What: Interactive primitives for confirmation prompts and TTY detection.
// Why: Centralize user interaction so control-path code can inject fakes.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(message string) (bool, error)

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptYesNo prints a confirmation prompt and reads the answer from stdin.
// The prompt goes to stdout when stdout is a terminal, to stderr otherwise,
// so piped output stays clean.
func PromptYesNo(message string) (bool, error) {
	out := io.Writer(os.Stderr)
	if IsTerminal(os.Stdout) {
		out = os.Stdout
	}
	return PromptYesNoWithIO(os.Stdin, out, message)
}

// PromptYesNoWithIO prints a confirmation prompt to out and reads the answer
// from in. No is the default: only "y" or "yes" (case-insensitive) confirm.
func PromptYesNoWithIO(in io.Reader, out io.Writer, message string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintf(out, "%s [Ny] ", message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	trimmed := strings.TrimSpace(strings.ToLower(line))
	return trimmed == "y" || trimmed == "yes", nil
}
