// Package config loads msgcore.yaml.
//
// The file is expanded for ${VAR} and ${VAR:-default} references, checked
// against an embedded CUE schema, then decoded over Default. Unknown keys
// are rejected by the schema.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/msgcore/internal/ir"
)

// Config is the full engine configuration.
type Config struct {
	Process   ir.ProcessKind `yaml:"process"`
	StorePath string         `yaml:"store_path"`
	EngineDir string         `yaml:"engine_dir"`
	Receipts  Receipts       `yaml:"receipts"`
	Router    Router         `yaml:"router"`
	History   History        `yaml:"history"`
	Bridge    Bridge         `yaml:"bridge"`
	Log       Log            `yaml:"log"`
}

// Receipts configures return receipt uploads.
type Receipts struct {
	ServerURL            string   `yaml:"server_url"`
	Timeout              Duration `yaml:"timeout"`
	MaxConcurrentUploads int      `yaml:"max_concurrent_uploads"`
}

// Router configures notification hydration.
type Router struct {
	MaxConcurrentHydrations int `yaml:"max_concurrent_hydrations"`
}

// History is the change log retention cap. Zero disables a limit.
type History struct {
	MaxRecords int      `yaml:"max_records"`
	MaxAge     Duration `yaml:"max_age"`
}

// Bridge configures notification forwarding to Redis. Disabled when
// RedisURL is empty.
type Bridge struct {
	RedisURL string `yaml:"redis_url"`
	Channel  string `yaml:"channel"`
	Retries  int    `yaml:"retries"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Default returns the configuration used for keys the file leaves out.
func Default() Config {
	return Config{
		Process:   ir.ProcessMainApp,
		StorePath: "msgcore.db",
		EngineDir: ".msgcore",
		Receipts: Receipts{
			Timeout:              Duration{30 * time.Second},
			MaxConcurrentUploads: 4,
		},
		Router: Router{MaxConcurrentHydrations: 4},
		History: History{
			MaxRecords: 100_000,
			MaxAge:     Duration{30 * 24 * time.Hour},
		},
		Bridge: Bridge{Retries: 3},
		Log:    Log{Level: "info"},
	}
}

// Resolve makes relative paths absolute against base, normally the
// directory of the config file.
func (c *Config) Resolve(base string) {
	if c.StorePath != "" && !filepath.IsAbs(c.StorePath) {
		c.StorePath = filepath.Join(base, c.StorePath)
	}
	if c.EngineDir != "" && !filepath.IsAbs(c.EngineDir) {
		c.EngineDir = filepath.Join(base, c.EngineDir)
	}
}
