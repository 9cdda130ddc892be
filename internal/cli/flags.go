package cli

import (
	"fmt"
	"strings"

	"github.com/riposte-dev/riposte/internal/config"
	http "github.com/riposte-dev/riposte/internal/http"
)

// parseHeaders turns repeated "Name: value" flags into a header map.
func parseHeaders(headers []string) map[string]string {
	parsed := make(map[string]string, len(headers))
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			parsed[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return parsed
}

// parseForm turns repeated "key=value" flags into a form field map.
func parseForm(fields []string) map[string]string {
	parsed := make(map[string]string, len(fields))
	for _, field := range fields {
		parts := strings.SplitN(field, "=", 2)
		if len(parts) == 2 {
			parsed[parts[0]] = parts[1]
		}
	}
	return parsed
}

// profileOptions loads the named profile from a config file and returns it
// as an instance-level option layer. No file and no profile is a no-op.
func profileOptions(configPath, profileName string) ([]http.Options, error) {
	if configPath == "" {
		if profileName != "" {
			return nil, fmt.Errorf("--profile requires --config")
		}
		return nil, nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if profileName == "" {
		profileName = "default"
	}
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return nil, err
	}

	return []http.Options{profile.Options()}, nil
}
