package config

import "fmt"

// ValidateConfig validates every profile in a loaded config.
func ValidateConfig(config *Config) error {
	for name, profile := range config.Profiles {
		if err := ValidateProfile(&profile); err != nil {
			return fmt.Errorf("invalid profile '%s': %w", name, err)
		}
	}
	return nil
}

// ValidateProfile validates a single profile.
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}

	if profile.Protocol != "" && profile.Protocol != "http" && profile.Protocol != "https" {
		return fmt.Errorf("protocol must be http or https, got '%s'", profile.Protocol)
	}

	if profile.Port < 0 || profile.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", profile.Port)
	}

	for key := range profile.Headers {
		if key == "" {
			return fmt.Errorf("header names cannot be empty")
		}
	}

	return nil
}
