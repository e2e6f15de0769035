package config

import (
	"fmt"

	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/marker"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMarkers(); err != nil {
		return err
	}
	if _, err := marker.ParsePolicy(c.Matching.Policy); err != nil {
		return err
	}
	if err := c.validateCorrections(); err != nil {
		return err
	}
	if err := c.validateFixtures(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMarkers() error {
	fields := []struct {
		name  string
		value string
	}{
		{"markers.old_testament", c.Markers.OldTestament},
		{"markers.new_testament", c.Markers.NewTestament},
		{"markers.new_testament_list_end", c.Markers.NewTestamentListEnd},
		{"markers.corpus_end", c.Markers.CorpusEnd},
	}
	for _, f := range fields {
		if f.value == "" {
			return errors.NewValidation(f.name, "must not be empty")
		}
	}
	return nil
}

func (c *Config) validateCorrections() error {
	for title, delta := range c.Corrections {
		if delta < 0 {
			err := errors.NewValidation("corrections", fmt.Sprintf("delta for %q must be >= 0", title))
			err.Value = fmt.Sprint(delta)
			return err
		}
	}
	return nil
}

func (c *Config) validateFixtures() error {
	if c.Fixtures.Sentinel == "" {
		return errors.NewValidation("fixtures.sentinel", "must not be empty")
	}
	if c.Fixtures.ExpectedBooks < 0 {
		return errors.NewValidation("fixtures.expected_books", "must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err := errors.NewValidation("logging.level", "must be one of debug, info, warn, error")
		err.Value = c.Logging.Level
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		err := errors.NewValidation("logging.format", "must be text or json")
		err.Value = c.Logging.Format
		return err
	}
	return nil
}
