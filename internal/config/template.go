// Where: internal/config/template.go
// What: Settings template rendering with a closed placeholder set.
// Why: A generated artifact must never carry unfilled or unknown fields.
package config

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"

	"github.com/translate/pootle/assets"
)

// Placeholders is the closed set of data placeholders the settings template
// may reference. Every member must appear in the template, and the template
// may reference nothing else.
var Placeholders = []string{
	"default_key",
	"db_engine",
	"db_name",
	"db_user",
	"db_password",
	"db_host",
	"db_port",
}

// DefaultSettingsTemplate returns the embedded settings template shipped
// with the runner.
func DefaultSettingsTemplate() (string, error) {
	payload, err := assets.SettingsTemplatesFS.ReadFile(assets.SettingsTemplatePath)
	if err != nil {
		return "", fmt.Errorf("read embedded settings template: %w", err)
	}
	return string(payload), nil
}

// RenderSettings substitutes values into the settings template text.
// Template functions (sprig) are allowed; data placeholders are validated
// against Placeholders in both directions before execution.
func RenderSettings(templateText string, values map[string]string) (string, error) {
	tmpl, err := template.New("settings").Funcs(sprig.TxtFuncMap()).Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("parse settings template: %w", err)
	}

	if err := checkPlaceholders(tmpl); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("render settings template: %w", err)
	}
	return buf.String(), nil
}

func checkPlaceholders(tmpl *template.Template) error {
	known := map[string]bool{}
	for _, name := range Placeholders {
		known[name] = true
	}

	used := map[string]bool{}
	for _, t := range tmpl.Templates() {
		if t.Tree == nil || t.Tree.Root == nil {
			continue
		}
		collectFields(t.Tree.Root, used)
	}

	var unknown, missing []string
	for name := range used {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	for _, name := range Placeholders {
		if !used[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(unknown)
	sort.Strings(missing)

	if len(unknown) > 0 {
		return fmt.Errorf("settings template references unknown placeholder %q", unknown[0])
	}
	if len(missing) > 0 {
		return fmt.Errorf("settings template is missing placeholder %q", missing[0])
	}
	return nil
}

// collectFields records the first identifier of every field access in the
// parse tree, descending into branch bodies.
func collectFields(node parse.Node, fields map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, item := range n.Nodes {
			collectFields(item, fields)
		}
	case *parse.ActionNode:
		collectPipeFields(n.Pipe, fields)
	case *parse.IfNode:
		collectBranchFields(&n.BranchNode, fields)
	case *parse.RangeNode:
		collectBranchFields(&n.BranchNode, fields)
	case *parse.WithNode:
		collectBranchFields(&n.BranchNode, fields)
	}
}

func collectBranchFields(branch *parse.BranchNode, fields map[string]bool) {
	collectPipeFields(branch.Pipe, fields)
	if branch.List != nil {
		collectFields(branch.List, fields)
	}
	if branch.ElseList != nil {
		collectFields(branch.ElseList, fields)
	}
}

func collectPipeFields(pipe *parse.PipeNode, fields map[string]bool) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			if field, ok := arg.(*parse.FieldNode); ok && len(field.Ident) > 0 {
				fields[field.Ident[0]] = true
			}
		}
	}
}
