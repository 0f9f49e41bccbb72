// Package config holds process-wide constants and the YAML-loaded
// RuntimeConfig, mirroring the teacher's split between internal/config's
// package constants and internal/ext's yaml.v3-tagged struct.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name RuntimeConfig looks for when no explicit
// path is given.
const DefaultConfigFile = "corevm.yaml"

// DefaultSuspensionInterval bounds how many InstrWhile/InstrDoUntil loop
// iterations run between ambient-cancellation checks when a config file
// does not override it.
const DefaultSuspensionInterval = 4096

// RuntimeConfig configures the cooperative-suspension interval and an
// optional host budget on top of the ctx.Err() cancellation already wired
// into the evaluator.
type RuntimeConfig struct {
	// SuspensionInterval is how many loop iterations InstrWhile/InstrDoUntil
	// run between checkCancel calls. Lower values notice cancellation
	// sooner at the cost of more context.Context.Err() calls.
	SuspensionInterval int `yaml:"suspension_interval,omitempty"`

	// HostBudget caps total wall-clock time a single Eval call may run,
	// zero means unbounded. RuntimeConfig only carries the configured value
	// through from corevm.yaml: the evaluator does not read it, and
	// cmd/corevm does not apply it. It takes effect only where a caller
	// wraps ctx with context.WithTimeout before invoking the evaluator.
	HostBudget time.Duration
}

// DefaultRuntimeConfig returns the config used when no corevm.yaml is found.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{SuspensionInterval: DefaultSuspensionInterval}
}

// rawConfig mirrors RuntimeConfig's yaml shape with HostBudget as the
// human-written duration string ("5s", "500ms") yaml.v3 has no built-in
// decoder for, since time.Duration's underlying int64 would otherwise be
// read as a plain (and wrong) count of nanoseconds.
type rawConfig struct {
	SuspensionInterval int    `yaml:"suspension_interval,omitempty"`
	HostBudget         string `yaml:"host_budget,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler so HostBudget round-trips
// through time.ParseDuration instead of yaml.v3's default numeric decoder.
func (c *RuntimeConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.SuspensionInterval = raw.SuspensionInterval
	if raw.HostBudget != "" {
		d, err := time.ParseDuration(raw.HostBudget)
		if err != nil {
			return fmt.Errorf("host_budget: %w", err)
		}
		c.HostBudget = d
	}
	return nil
}

// LoadRuntimeConfig reads and parses a corevm.yaml file at path.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseRuntimeConfig(data)
}

// ParseRuntimeConfig parses corevm.yaml content from bytes, filling in
// defaults for anything omitted.
func ParseRuntimeConfig(data []byte) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parsing corevm.yaml: %w", err)
	}
	if cfg.SuspensionInterval <= 0 {
		cfg.SuspensionInterval = DefaultSuspensionInterval
	}
	return cfg, nil
}

// LoadOrDefault loads corevm.yaml from path if it exists, and falls back to
// DefaultRuntimeConfig otherwise.
func LoadOrDefault(path string) (RuntimeConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultRuntimeConfig(), nil
		}
		return RuntimeConfig{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return LoadRuntimeConfig(path)
}
