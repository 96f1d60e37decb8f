// Where: internal/config/bootstrap.go
// What: First-run settings bootstrap (`pootle init`).
// Why: New installations need a complete artifact with a fresh secret.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/translate/pootle/internal/command"
	"github.com/translate/pootle/internal/interaction"
	"github.com/translate/pootle/internal/meta"
)

// dbEngines maps the accepted database kinds to the database/sql driver
// names materialized into the artifact.
var dbEngines = map[string]string{
	"sqlite":     "sqlite",
	"mysql":      "mysql",
	"postgresql": "pgx",
}

// InitOptions carries the inputs of the init command. Template overrides
// the embedded settings template when non-empty; Confirm defaults to the
// interactive stdin prompt.
type InitOptions struct {
	DB         string
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	NoInput    bool
	Template   string
	Confirm    interaction.ConfirmFunc
}

// InitSettings writes an initial settings file for a new installation.
//
// The database kind is validated before any filesystem interaction. An
// existing target is only replaced after an explicit confirmation; under
// NoInput it is never replaced. Write failures surface as *WriteError.
func InitSettings(path string, opts InitOptions) error {
	kind := opts.DB
	if kind == "" {
		kind = "sqlite"
	}
	engine, ok := dbEngines[kind]
	if !ok {
		return command.Errorf("Unrecognised database %q: should be one of 'sqlite', 'mysql' or 'postgresql'", kind)
	}

	if dirname := filepath.Dir(path); dirname != "" {
		if err := os.MkdirAll(dirname, 0o755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if _, err := os.Stat(path); err == nil {
		if opts.NoInput {
			return &FileExistsError{Path: path}
		}
		confirm := opts.Confirm
		if confirm == nil {
			confirm = interaction.PromptYesNo
		}
		overwrite, err := confirm(fmt.Sprintf("File already exists at %q, overwrite?", path))
		if err != nil {
			return fmt.Errorf("confirm overwrite: %w", err)
		}
		if !overwrite {
			return &FileExistsError{Path: path}
		}
	}

	secret, err := generateSecretKey()
	if err != nil {
		return err
	}

	values := placeholderValues(kind, engine, secret, opts)

	templateText := opts.Template
	if templateText == "" {
		templateText, err = DefaultSettingsTemplate()
		if err != nil {
			return err
		}
	}

	rendered, err := RenderSettings(templateText, values)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// placeholderValues shapes the placeholder set for the chosen database
// kind. sqlite keeps its database inside the deployment's working path and
// takes no credentials; the server backends quote every parameter.
func placeholderValues(kind, engine, secret string, opts InitOptions) map[string]string {
	values := map[string]string{
		"default_key": quoteYAML(secret),
		"db_engine":   quoteYAML(engine),
	}

	if kind == "sqlite" {
		name := opts.DBName
		if name == "" {
			name = "dbs/pootle.db"
		}
		values["db_name"] = fmt.Sprintf("working_path(%s)", quoteYAML(name))
		values["db_user"] = quoteYAML("")
		values["db_password"] = quoteYAML("")
		values["db_host"] = quoteYAML("")
		values["db_port"] = quoteYAML("")
		return values
	}

	name := opts.DBName
	if name == "" {
		name = "pootledb"
	}
	user := opts.DBUser
	if user == "" {
		user = "pootle"
	}
	values["db_name"] = quoteYAML(name)
	values["db_user"] = quoteYAML(user)
	values["db_password"] = quoteYAML(opts.DBPassword)
	values["db_host"] = quoteYAML(opts.DBHost)
	values["db_port"] = quoteYAML(opts.DBPort)
	return values
}

// generateSecretKey reads the key material from the system RNG exactly
// once and encodes it with standard base64.
func generateSecretKey() (string, error) {
	buf := make([]byte, meta.SecretKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read secret key material: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// quoteYAML wraps a value in single quotes, doubling embedded quotes per
// YAML scalar rules.
func quoteYAML(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
