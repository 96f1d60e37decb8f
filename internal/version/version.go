// Where: internal/version/version.go
// What: Version string assembly.
// Why: Provide release and build information for `pootle --version`.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/translate/pootle/internal/meta"
)

// GetVersion returns the full human-readable version line, e.g.
// "Pootle 2.7.0 (go1.25.1, rev 1a2b3c4)".
func GetVersion() string {
	return fmt.Sprintf("Pootle %s (%s, rev %s)", meta.Version, runtime.Version(), Revision())
}

// Revision returns the VCS revision derived from build info, shortened to
// 7 characters and suffixed with "-dirty" when the tree was modified.
// It returns "dev" if build info is not available.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}

	if modified {
		return revision + "-dirty"
	}
	return revision
}
