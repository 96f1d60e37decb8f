// Where: cmd/pootle/main.go
// What: Runner entrypoint.
// Why: Execute management commands with configured dependencies.
package main

import (
	"os"

	"github.com/translate/pootle/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
