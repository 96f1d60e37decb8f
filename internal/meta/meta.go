// Where: internal/meta/meta.go
// What: Project-wide metadata constants.
// Why: Keep naming and environment conventions in one place.
package meta

const (
	// Project Identity
	AppName   = "pootle"
	Slug      = "pootle"
	EnvPrefix = "POOTLE"

	// Release version of the server this runner front-ends.
	Version = "2.7.0"

	// Settings Resolution
	EnvSettings           = "POOTLE_SETTINGS"
	EnvSettingsModule     = "POOTLE_SETTINGS_MODULE"
	DefaultSettingsModule = "pootle.settings"
	DefaultSettingsPath   = "~/.pootle/pootle.conf"

	// Directory Layout
	HomeDir = ".pootle"

	// Secret key material read from the system RNG before encoding.
	SecretKeyBytes = 50

	// Cache namespaces every deployment must configure.
	CacheStats = "stats"
	CacheRedis = "redis"
)
