// Where: internal/config/errors.go
// What: Typed failures of configuration resolution and bootstrap.
// Why: The exit boundary decides the process status from the error kind.
package config

import "fmt"

// NotFoundError reports that no configuration file exists at the resolved
// path and the settings environment variable is unset.
type NotFoundError struct {
	Path   string
	EnvVar string
	Runner string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Configuration file does not exist at %q or "+
		"%q environment variable has not been set.\n"+
		"Use '%s init' to initialize the configuration file.",
		e.Path, e.EnvVar, e.Runner)
}

// ExitCode marks missing configuration as a user-correctable condition.
func (e *NotFoundError) ExitCode() int { return 2 }

// FileExistsError reports that the target settings file is present and
// overwriting was declined or disallowed.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return "File already exists, not overwriting."
}

// ExitCode matches the declined-overwrite contract.
func (e *FileExistsError) ExitCode() int { return 2 }

// WriteError reports a failed write of the generated settings file. It
// names the destination and preserves the cause.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Unable to write default settings file to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
