// Where: internal/config/locator.go
// What: Settings file resolution and environment priming.
// Why: Every runner invocation must agree on which configuration to load.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/translate/pootle/internal/meta"
)

// RuntimeConfig records the outcome of configuration resolution. It is
// read-only; later stages load settings through the environment variable.
type RuntimeConfig struct {
	Path   string
	EnvVar string
	Exists bool
}

// Configure determines which settings file to use and primes the process
// environment accordingly. The settings environment variable is derived
// from the project name (upper-cased, suffixed with _SETTINGS). Resolution
// fails only when the path does not exist and that variable is unset.
//
// Both environment writes are set-only-if-unset: values already present in
// the environment always win over derived ones.
func Configure(project, configPath, settingsModule, runnerName string) (RuntimeConfig, error) {
	envVar := strings.ToUpper(project) + "_SETTINGS"

	path := ExpandUser(configPath)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)

	exists := false
	if _, err := os.Stat(path); err == nil {
		exists = true
	}

	if !exists && os.Getenv(envVar) == "" {
		return RuntimeConfig{}, &NotFoundError{Path: path, EnvVar: envVar, Runner: runnerName}
	}

	setDefaultEnv(envVar, path)
	setDefaultEnv(meta.EnvSettingsModule, settingsModule)

	return RuntimeConfig{Path: path, EnvVar: envVar, Exists: exists}, nil
}

// ExpandUser replaces a leading ~ with the current user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// setDefaultEnv writes the variable only when it is absent from the
// environment. A present-but-empty value is preserved.
func setDefaultEnv(key, value string) {
	if _, ok := os.LookupEnv(key); ok {
		return
	}
	_ = os.Setenv(key, value)
}
