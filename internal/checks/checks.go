// Where: internal/checks/checks.go
// What: System diagnostics behind the `check` management command.
// Why: Broken cache, queue or database plumbing should surface as one
//      readable report instead of scattered runtime failures.
package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/translate/pootle/internal/config"
)

// redisMinimumVersion is the oldest redis server the job queue supports.
var redisMinimumVersion = [3]int{2, 8, 4}

// Level grades a finding.
type Level int

const (
	// Warning findings degrade the installation but do not block it.
	Warning Level = iota
	// Critical findings block a working installation.
	Critical
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	default:
		return "unknown"
	}
}

// Result is one diagnostic finding.
type Result struct {
	ID    string
	Level Level
	Msg   string
	Hint  string
}

// RunAll evaluates every diagnostic against the loaded settings.
func RunAll(ctx context.Context, settings *config.Settings, status RedisStatus) []Result {
	results := CheckRedis(ctx, settings.DefaultQueue(), status)
	results = append(results, CheckSettings(settings)...)
	results = append(results, CheckDatabase(ctx, settings)...)
	return results
}

// CheckRedis verifies the queue backend is reachable, recent enough and
// has workers attached. An unreachable backend short-circuits the rest.
func CheckRedis(ctx context.Context, queue config.QueueSettings, status RedisStatus) []Result {
	if err := status.Ping(ctx); err != nil {
		return []Result{{
			ID:    "pootle.C001",
			Level: Critical,
			Msg:   fmt.Sprintf("Could not connect to Redis (%v)", err),
			Hint:  fmt.Sprintf("Make sure Redis is running on %s", queue.Addr()),
		}}
	}

	var results []Result

	if version, err := status.ServerVersion(ctx); err == nil && versionBefore(version, redisMinimumVersion) {
		results = append(results, Result{
			ID:    "pootle.C007",
			Level: Critical,
			Msg:   "Your version of Redis is too old.",
			Hint: fmt.Sprintf("Update your system's Redis server package to at least version %d.%d.%d",
				redisMinimumVersion[0], redisMinimumVersion[1], redisMinimumVersion[2]),
		})
	}

	if running, err := status.WorkersRunning(ctx); err == nil && !running {
		results = append(results, Result{
			ID:    "pootle.W001",
			Level: Warning,
			Msg:   "No RQ Worker running.",
			Hint:  "Run new workers with 'pootle rqworker'",
		})
	}

	return results
}

// CheckSettings inspects the loaded settings for production hazards.
func CheckSettings(settings *config.Settings) []Result {
	var results []Result

	if cache, ok := settings.Caches["default"]; !ok || cache.Backend != "redis" {
		results = append(results, Result{
			ID:    "pootle.C005",
			Level: Critical,
			Msg:   "Cache backend is not set to Redis.",
			Hint:  fmt.Sprintf("Set the default cache backend to 'redis'\nCurrent backend: %q", cache.Backend),
		})
	}

	if settings.Debug {
		results = append(results, Result{
			ID:    "pootle.W005",
			Level: Warning,
			Msg:   "DEBUG mode is on. Do not do this in production!",
			Hint:  "Set debug: false in Pootle settings",
		})
	} else if settings.Database.Engine == "sqlite" {
		// Not worth a second warning while debugging.
		results = append(results, Result{
			ID:    "pootle.W006",
			Level: Warning,
			Msg:   "The sqlite database backend is unsupported",
			Hint:  "Set your default database engine to postgresql or mysql",
		})
	}

	if settings.ContactEmail == "" {
		results = append(results, Result{
			ID:    "pootle.W008",
			Level: Warning,
			Msg:   "contact_email is not set.",
			Hint: "Set contact_email to allow users to contact administrators " +
				"through the Pootle contact form.",
		})
	}

	return results
}

// versionBefore reports whether a dotted version string sorts before the
// minimum. Unparseable components count as new enough.
func versionBefore(version string, minimum [3]int) bool {
	parts := strings.Split(strings.TrimSpace(version), ".")
	for i := 0; i < len(minimum); i++ {
		if i >= len(parts) {
			return true
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return false
		}
		if n != minimum[i] {
			return n < minimum[i]
		}
	}
	return false
}
