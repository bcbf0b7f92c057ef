package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.IntervalMin <= 0 {
		return errors.New("capture.interval_min must be greater than zero")
	}
	if c.Capture.IntervalMax <= 0 {
		return errors.New("capture.interval_max must be greater than zero")
	}
	if c.Capture.IntervalMin > c.Capture.IntervalMax {
		return fmt.Errorf("capture.interval_min (%d) must not exceed capture.interval_max (%d)",
			c.Capture.IntervalMin, c.Capture.IntervalMax)
	}
	if c.Capture.PixelSize < 1 {
		return errors.New("capture.pixel_size must be at least 1")
	}
	if c.Capture.Display < 0 {
		return errors.New("capture.display must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
