package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config holds service-boundary policy. None of it reaches the engine:
// the engine's semantics are fixed, only transport and persistence are
// configurable.
type Config struct {
	// StorePath is the SQLite audit-trail path. Empty disables auditing.
	StorePath string `yaml:"store_path"`

	// StrictTransport maps governance violations to non-2xx HTTP status
	// codes in serve mode. The default (false) answers 200 with the
	// violation payload so a calling UI can render it directly.
	StrictTransport bool `yaml:"strict_transport"`

	// Addr is the serve listen address.
	Addr string `yaml:"addr"`
}

const defaultAddr = ":8422"

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{Addr: defaultAddr}
}

// LoadConfig reads a YAML config file, filling defaults for anything the
// file leaves unset. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return cfg, nil
}
