// Package config loads named environment profiles for the CLI: base URL,
// headers, authentication, body/response formats and logging defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profiles is the top-level profile file.
type Profiles struct {
	// Default names the environment used when the caller picks none.
	Default      string                 `yaml:"default" json:"default"`
	Environments map[string]Environment `yaml:"environments" json:"environments"`
}

// Environment is one named request configuration.
type Environment struct {
	BaseURL        string   `yaml:"baseUrl" json:"baseUrl"`
	Headers        []string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Auth           *Auth    `yaml:"auth,omitempty" json:"auth,omitempty"`
	BodyFormat     string   `yaml:"bodyFormat,omitempty" json:"bodyFormat,omitempty"`
	ResponseMode   string   `yaml:"responseMode,omitempty" json:"responseMode,omitempty"`
	Logging        *Logging `yaml:"logging,omitempty" json:"logging,omitempty"`
	Timeout        string   `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	TrustLocalhost bool     `yaml:"trustLocalhost,omitempty" json:"trustLocalhost,omitempty"`
}

// Auth configures an authentication scheme for an environment.
type Auth struct {
	Method   string `yaml:"method" json:"method"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	Token    string `yaml:"token,omitempty" json:"token,omitempty"`
}

// Logging configures per-request wire logging for an environment.
type Logging struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// Load reads a profile file. The format is chosen by extension: .json is
// JSON, everything else is parsed as YAML.
func Load(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses profile data, dispatching on the file extension in path.
func Parse(data []byte, path string) (*Profiles, error) {
	var profiles Profiles

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &profiles); err != nil {
			return nil, fmt.Errorf("failed to parse JSON profiles: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &profiles); err != nil {
			return nil, fmt.Errorf("failed to parse YAML profiles: %w", err)
		}
	}

	if err := validate(&profiles); err != nil {
		return nil, err
	}
	return &profiles, nil
}

// Environment resolves a named environment, falling back to the file's
// default when name is empty.
func (p *Profiles) Environment(name string) (Environment, error) {
	if name == "" {
		name = p.Default
	}
	if name == "" {
		return Environment{}, fmt.Errorf("no environment selected and no default configured")
	}
	env, ok := p.Environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("unknown environment %q", name)
	}
	return env, nil
}

// ParseTimeout converts the environment's timeout string. An empty string
// means no timeout.
func (e Environment) ParseTimeout() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", e.Timeout, err)
	}
	return d, nil
}
