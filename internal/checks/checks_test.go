// Where: internal/checks/checks_test.go
// What: Diagnostics tests over a fake redis view.
package checks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/translate/pootle/internal/config"
	"github.com/translate/pootle/internal/rq"
)

type fakeRedis struct {
	pingErr    error
	version    string
	versionErr error
	workers    bool
	workersErr error
}

func (f *fakeRedis) Ping(context.Context) error { return f.pingErr }

func (f *fakeRedis) ServerVersion(context.Context) (string, error) {
	return f.version, f.versionErr
}

func (f *fakeRedis) WorkersRunning(context.Context) (bool, error) {
	return f.workers, f.workersErr
}

func healthyRedis() *fakeRedis {
	return &fakeRedis{version: "7.2.4", workers: true}
}

func findResult(results []Result, id string) (Result, bool) {
	for _, result := range results {
		if result.ID == id {
			return result, true
		}
	}
	return Result{}, false
}

func TestStatusFromClientWrapsGivenClient(t *testing.T) {
	client := rq.NewClient(config.QueueSettings{})
	defer client.Close()

	status := StatusFromClient(client)

	if status.client != client {
		t.Fatal("status must wrap the given client, not open a new one")
	}
}

func TestCheckRedisUnreachable(t *testing.T) {
	status := &fakeRedis{pingErr: errors.New("dial tcp: connection refused")}

	results := CheckRedis(context.Background(), config.QueueSettings{}, status)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	got := results[0]
	if got.ID != "pootle.C001" || got.Level != Critical {
		t.Fatalf("result = %+v, want pootle.C001 Critical", got)
	}
	if !strings.Contains(got.Msg, "connection refused") {
		t.Fatalf("Msg = %q, want the dial error included", got.Msg)
	}
	if !strings.Contains(got.Hint, "localhost:6379") {
		t.Fatalf("Hint = %q, want the queue address included", got.Hint)
	}
}

func TestCheckRedisTooOld(t *testing.T) {
	status := &fakeRedis{version: "2.6.0", workers: true}

	results := CheckRedis(context.Background(), config.QueueSettings{}, status)

	got, ok := findResult(results, "pootle.C007")
	if !ok {
		t.Fatalf("no pootle.C007 in %+v", results)
	}
	if got.Level != Critical {
		t.Fatalf("level = %v, want %v", got.Level, Critical)
	}
	if !strings.Contains(got.Hint, "2.8.4") {
		t.Fatalf("Hint = %q, want the minimum version named", got.Hint)
	}
	if _, ok := findResult(results, "pootle.W001"); ok {
		t.Fatal("unexpected pootle.W001 while workers are running")
	}
}

func TestCheckRedisNoWorkers(t *testing.T) {
	status := &fakeRedis{version: "7.2.4", workers: false}

	results := CheckRedis(context.Background(), config.QueueSettings{}, status)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	if results[0].ID != "pootle.W001" || results[0].Level != Warning {
		t.Fatalf("result = %+v, want pootle.W001 Warning", results[0])
	}
	if results[0].Msg != "No RQ Worker running." {
		t.Fatalf("Msg = %q", results[0].Msg)
	}
}

func TestCheckRedisHealthy(t *testing.T) {
	results := CheckRedis(context.Background(), config.QueueSettings{}, healthyRedis())
	if len(results) != 0 {
		t.Fatalf("got %+v, want none", results)
	}
}

func TestCheckRedisVersionAtMinimum(t *testing.T) {
	status := &fakeRedis{version: "2.8.4", workers: true}

	results := CheckRedis(context.Background(), config.QueueSettings{}, status)
	if _, ok := findResult(results, "pootle.C007"); ok {
		t.Fatal("pootle.C007 raised for the minimum supported version")
	}
}

func TestVersionBefore(t *testing.T) {
	minimum := [3]int{2, 8, 4}
	cases := []struct {
		version string
		want    bool
	}{
		{"2.6.0", true},
		{"2.8.3", true},
		{"2.8.4", false},
		{"2.8", true},
		{"3.0.1", false},
		{"10.0.0", false},
		{"7.2.4\r", false},
		{"garbage", false},
	}
	for _, tc := range cases {
		if got := versionBefore(tc.version, minimum); got != tc.want {
			t.Errorf("versionBefore(%q) = %v, want %v", tc.version, got, tc.want)
		}
	}
}

func redisCacheSettings() map[string]config.CacheSettings {
	return map[string]config.CacheSettings{
		"default": {Backend: "redis", Location: "redis://localhost:6379/1"},
		"redis":   {Backend: "redis", Location: "redis://localhost:6379/2"},
		"stats":   {Backend: "redis", Location: "redis://localhost:6379/3"},
	}
}

func TestCheckSettingsDebugMode(t *testing.T) {
	settings := &config.Settings{
		Debug:        true,
		ContactEmail: "admin@example.com",
		Database:     config.DatabaseSettings{Engine: "sqlite"},
		Caches:       redisCacheSettings(),
	}

	results := CheckSettings(settings)

	if _, ok := findResult(results, "pootle.W005"); !ok {
		t.Fatalf("no pootle.W005 in %+v", results)
	}
	if _, ok := findResult(results, "pootle.W006"); ok {
		t.Fatal("pootle.W006 raised alongside debug warning")
	}
}

func TestCheckSettingsSqliteBackend(t *testing.T) {
	settings := &config.Settings{
		ContactEmail: "admin@example.com",
		Database:     config.DatabaseSettings{Engine: "sqlite"},
		Caches:       redisCacheSettings(),
	}

	results := CheckSettings(settings)

	got, ok := findResult(results, "pootle.W006")
	if !ok {
		t.Fatalf("no pootle.W006 in %+v", results)
	}
	if got.Msg != "The sqlite database backend is unsupported" {
		t.Fatalf("Msg = %q", got.Msg)
	}
}

func TestCheckSettingsContactEmail(t *testing.T) {
	settings := &config.Settings{
		Database: config.DatabaseSettings{Engine: "mysql"},
		Caches:   redisCacheSettings(),
	}

	results := CheckSettings(settings)

	if _, ok := findResult(results, "pootle.W008"); !ok {
		t.Fatalf("no pootle.W008 in %+v", results)
	}

	settings.ContactEmail = "admin@example.com"
	if _, ok := findResult(CheckSettings(settings), "pootle.W008"); ok {
		t.Fatal("pootle.W008 raised with contact_email set")
	}
}

func TestCheckSettingsCacheBackend(t *testing.T) {
	settings := &config.Settings{
		ContactEmail: "admin@example.com",
		Database:     config.DatabaseSettings{Engine: "mysql"},
		Caches: map[string]config.CacheSettings{
			"default": {Backend: "memcached"},
		},
	}

	got, ok := findResult(CheckSettings(settings), "pootle.C005")
	if !ok {
		t.Fatal("no pootle.C005 for a non-redis backend")
	}
	if got.Level != Critical {
		t.Fatalf("level = %v, want %v", got.Level, Critical)
	}
	if !strings.Contains(got.Hint, `"memcached"`) {
		t.Fatalf("Hint = %q, want current backend named", got.Hint)
	}
}

func TestCheckSettingsMissingDefaultCache(t *testing.T) {
	settings := &config.Settings{
		ContactEmail: "admin@example.com",
		Database:     config.DatabaseSettings{Engine: "mysql"},
		Caches:       map[string]config.CacheSettings{"stats": {Backend: "redis"}},
	}

	if _, ok := findResult(CheckSettings(settings), "pootle.C005"); !ok {
		t.Fatal("no pootle.C005 without a default cache")
	}
}

func TestCheckSettingsClean(t *testing.T) {
	settings := &config.Settings{
		ContactEmail: "admin@example.com",
		Database:     config.DatabaseSettings{Engine: "mysql"},
		Caches:       redisCacheSettings(),
	}

	if results := CheckSettings(settings); len(results) != 0 {
		t.Fatalf("got %+v, want none", results)
	}
}
