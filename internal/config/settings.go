// Where: internal/config/settings.go
// What: Settings artifact model and loader.
// Why: The readiness gate, the mode controller and the checks all read
//      from one validated view of the user's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Settings models the user configuration artifact (by default
// ~/.pootle/pootle.conf). Unknown keys are tolerated; deployments extend
// their settings freely.
type Settings struct {
	SecretKey    string                   `yaml:"secret_key"`
	Debug        bool                     `yaml:"debug"`
	ContactEmail string                   `yaml:"contact_email"`
	Database     DatabaseSettings         `yaml:"database"`
	Caches       map[string]CacheSettings `yaml:"caches"`
	RQ           RQSettings               `yaml:"rq"`

	path string
}

// DatabaseSettings holds the connection parameters written by init. Port
// stays a string so empty means "backend default".
type DatabaseSettings struct {
	Engine   string `yaml:"engine"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
}

// CacheSettings describes one cache namespace.
type CacheSettings struct {
	Backend  string `yaml:"backend"`
	Location string `yaml:"location"`
	Timeout  int    `yaml:"timeout,omitempty"`
}

// RQSettings holds the job-queue configuration.
type RQSettings struct {
	Queues map[string]QueueSettings `yaml:"queues"`
}

// QueueSettings describes one RQ queue. Async defaults to true when not
// set, matching worker-backed deployments.
type QueueSettings struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	DB             int    `yaml:"db"`
	Async          *bool  `yaml:"async"`
	DefaultTimeout int    `yaml:"default_timeout"`
}

// IsAsync reports the effective execution mode of the queue.
func (q QueueSettings) IsAsync() bool {
	return q.Async == nil || *q.Async
}

// Addr returns the queue's redis address in host:port form, defaulting to
// localhost:6379.
func (q QueueSettings) Addr() string {
	host := q.Host
	if host == "" {
		host = "localhost"
	}
	port := q.Port
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// LoadSettings reads the settings artifact at path, validates it against
// the settings schema and decodes it.
func LoadSettings(path string) (*Settings, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := ValidateSettings(payload); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.path = path
	return &s, nil
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string { return s.path }

// DefaultQueue returns the queue named "default", or a zero value when the
// artifact configures no queues.
func (s *Settings) DefaultQueue() QueueSettings {
	return s.RQ.Queues["default"]
}

var workingPathPattern = regexp.MustCompile(`^working_path\('(.*)'\)$`)

// DatabasePath resolves the configured database name for file-backed
// engines. A value of the form working_path('relative') resolves against
// the settings file's directory; anything else is returned as-is.
func (s *Settings) DatabasePath() string {
	name := s.Database.Name
	match := workingPathPattern.FindStringSubmatch(name)
	if match == nil {
		return name
	}
	return filepath.Join(filepath.Dir(s.path), filepath.FromSlash(match[1]))
}
