package types

import (
	"errors"
	"time"
)

// Config selects the backend a client talks to and carries its parameters.
type Config struct {
	Backend  string        `json:"backend" yaml:"backend"`
	BaseURL  string        `json:"base_url" yaml:"base_url"`
	Token    string        `json:"token" yaml:"token"`
	DataDir  string        `json:"data_dir" yaml:"data_dir"`
	LogLevel string        `json:"log_level" yaml:"log_level"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// Supported backend names.
const (
	BackendHTTP = "http"
	BackendSim  = "sim"
)

// DefaultTimeout bounds a single HTTP exchange when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrBaseURLEmpty   = errors.New("base url must not be empty for the http backend")
	ErrTimeoutInvalid = errors.New("timeout must not be negative")
)

var knownBackends = map[string]bool{
	BackendHTTP: true,
	BackendSim:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendHTTP && c.BaseURL == "" {
		return ErrBaseURLEmpty
	}
	if c.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	return nil
}

// EffectiveTimeout returns Timeout, or DefaultTimeout when unset.
func (c Config) EffectiveTimeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
