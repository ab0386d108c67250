package config

import "fmt"

// ConfigurationError reports a required setting that is missing or has an
// unusable value. It is returned before any state is touched.
type ConfigurationError struct {
	Key     string
	Purpose string
	Invalid string
}

func (e *ConfigurationError) Error() string {
	if e.Invalid != "" {
		return fmt.Sprintf("configuration: %s: %s", e.Key, e.Invalid)
	}
	if e.Purpose == "" {
		return fmt.Sprintf("configuration: %s is not set", e.Key)
	}
	return fmt.Sprintf("configuration: %s is not set (required for %s)", e.Key, e.Purpose)
}

func missing(purpose string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &ConfigurationError{Key: pairs[i], Purpose: purpose}
		}
	}
	return nil
}
