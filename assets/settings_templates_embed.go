// Where: assets/settings_templates_embed.go
// What: Embed the initial settings template for the config bootstrapper.
// Why: Keep the shipped artifact next to the binary instead of on disk.
package assets

import "embed"

//go:embed templates/pootle.conf.template
var SettingsTemplatesFS embed.FS

// SettingsTemplatePath is the path of the default settings template inside
// SettingsTemplatesFS.
const SettingsTemplatePath = "templates/pootle.conf.template"
