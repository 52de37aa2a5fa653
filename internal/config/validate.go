package config

import (
	"fmt"
	"strings"
)

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "text": true}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Converter.validate(); err != nil {
		return fmt.Errorf("converter: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !validLevels[strings.ToLower(strings.TrimSpace(l.Level))] {
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	if !validFormats[strings.ToLower(strings.TrimSpace(l.Format))] {
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (c *ConverterConfig) validate() error {
	if strings.TrimSpace(c.Encoding) == "" {
		return fmt.Errorf("encoding must not be empty")
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be >= 1 (got %d)", c.ChunkSize)
	}
	return nil
}
