package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogs(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	return nil
}

func (c *Config) validateLogs() error {
	if c.Logs.Dir == "" {
		return errors.New("logs.dir must be set")
	}
	info, err := os.Stat(c.Logs.Dir)
	if err != nil {
		return fmt.Errorf("logs.dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("logs.dir %s is not a directory", c.Logs.Dir)
	}
	if c.Logs.PageLength <= 0 {
		return errors.New("logs.page_length must be positive")
	}
	if c.Logs.MaxLineLength <= 0 {
		return errors.New("logs.max_line_length must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
