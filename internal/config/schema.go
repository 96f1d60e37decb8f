// Where: internal/config/schema.go
// What: Structural validation of the settings artifact.
// Why: Catch malformed configuration before any subsystem consumes it.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

//go:embed schema/pootle.schema.json
var settingsSchema string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// ValidateSettings checks a raw YAML settings payload against the
// embedded schema.
func ValidateSettings(payload []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(payload)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("pootle.schema.json", strings.NewReader(settingsSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("pootle.schema.json")
	})
	return compiledSchema, schemaErr
}
