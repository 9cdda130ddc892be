package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	riposte "github.com/riposte-dev/riposte/internal/http"
)

// Config is the top-level profile file: named sets of default request
// options applied under command-line flags.
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile holds instance-level defaults for a client.
type Profile struct {
	Protocol string            `yaml:"protocol,omitempty"`
	Host     string            `yaml:"host,omitempty"`
	Port     int               `yaml:"port,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
}

// LoadConfig loads and validates a YAML profile file.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Profile looks up a named profile.
func (c *Config) Profile(name string) (*Profile, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", name)
	}
	return &profile, nil
}

// Options converts a profile into a client option layer.
func (p *Profile) Options() riposte.Options {
	return riposte.Options{
		Protocol: p.Protocol,
		Host:     p.Host,
		Port:     p.Port,
		Headers:  p.Headers,
	}
}
