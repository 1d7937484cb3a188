package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error

	errs = append(errs, validateLogConfig(&config.Logging)...)
	errs = append(errs, validateDecodeConfig(&config.Decode)...)

	for i := range config.Syntax {
		if _, err := config.Syntax[i].toBER(); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("syntax[%d]", i),
				Message: err.Error(),
			})
		}
	}

	return errs
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	return errs
}

func validateDecodeConfig(config *DecodeConfig) []error {
	switch config.Format {
	case "", "tree", "table":
		return nil
	}
	return []error{ValidationError{
		Field:   "decode.format",
		Message: "must be tree or table",
	}}
}
