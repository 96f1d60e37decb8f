// Where: internal/app/init.go
// What: The `init` path: parse flags and bootstrap a settings file.
// Why: First-run installations need a complete artifact before any other
//      command can load settings.
package app

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/translate/pootle/internal/command"
	"github.com/translate/pootle/internal/config"
	"github.com/translate/pootle/internal/meta"
)

// initCLI is the flag grammar of `pootle init`. There is deliberately no
// --db-password flag; the password is set by editing the generated file.
type initCLI struct {
	DB     string `name:"db" help:"Use the specified database backend (default: 'sqlite'; other options: 'mysql', 'postgresql')."`
	DBName string `name:"db-name" help:"Database name (default: 'pootledb') or path to database file if using sqlite (default: 'dbs/pootle.db')."`
	DBUser string `name:"db-user" help:"Name of the database user. Not used with sqlite."`
	DBHost string `name:"db-host" help:"Database host. Defaults to localhost. Not used with sqlite."`
	DBPort string `name:"db-port" help:"Database port. Defaults to backend default. Not used with sqlite."`

	Config  string `help:"Use the specified configuration file." placeholder:"PATH"`
	NoInput bool   `name:"noinput" help:"Never prompt for input."`
	NoRQ    bool   `name:"no-rq" help:"Run all jobs in a single process, without using rq workers."`
}

// runInit parses the init flag set and writes the initial settings file.
// flags is the argument vector with the `init` token removed.
func runInit(flags []string, deps Dependencies, out io.Writer) int {
	var cli initCLI
	parser, err := kong.New(&cli,
		kong.Name(deps.RunnerName+" init"),
		kong.Description("Initialize a new configuration file."),
		kong.Writers(out, out),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	if _, err := parser.Parse(flags); err != nil {
		return exitWithError(out, command.Errorf("%v", err))
	}
	if hasHelpFlag(flags) {
		// kong already rendered the help text above.
		return 0
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = meta.DefaultSettingsPath
	}
	path := config.ExpandUser(configPath)

	err = config.InitSettings(path, config.InitOptions{
		DB:      cli.DB,
		DBName:  cli.DBName,
		DBUser:  cli.DBUser,
		DBHost:  cli.DBHost,
		DBPort:  cli.DBPort,
		NoInput: cli.NoInput,
		Confirm: deps.confirmFunc(out),
	})
	if err != nil {
		return exitWithError(out, err)
	}

	if cli.DB == "mysql" || cli.DB == "postgresql" {
		fmt.Fprintf(out, "Configuration file created at %q. Your database password "+
			"is not currently set. You may want to update the database settings now\n", path)
	} else {
		fmt.Fprintf(out, "Configuration file created at %q\n", path)
	}
	return 0
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if isHelpFlag(arg) {
			return true
		}
	}
	return false
}
