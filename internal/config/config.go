// Package config holds the resolved console configuration and the
// machinery to load it: command-line values merged with an optional
// JSON, TOML or YAML file, plus live reload of the reloadable subset.
//
// Merge rule: values present in the config file override the
// command-line values; absent file keys leave the command-line values
// in place.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDevice is the serial device used when nothing is configured.
const DefaultDevice = "/dev/ttyUSB1"

// Remote names the TCP endpoint of a serial bridge.
type Remote struct {
	Host string `json:"host" toml:"host" yaml:"host"`
	Port int    `json:"port" toml:"port" yaml:"port"`
}

// ColorPattern maps a regular expression to a display style.
type ColorPattern struct {
	Pattern string `json:"pattern" toml:"pattern" yaml:"pattern"`
	FG      string `json:"fg" toml:"fg" yaml:"fg"`
	BG      string `json:"bg" toml:"bg" yaml:"bg"`
}

// NamedPattern is a ColorPattern with its rule name.
type NamedPattern struct {
	Name string
	ColorPattern
}

// ColorPatterns preserves the declared order of the rules; the first
// matching rule wins, so order is part of the configuration.
type ColorPatterns []NamedPattern

// Config is the fully resolved configuration consumed by the app.
type Config struct {
	InputWindowHeight int           `json:"input_window_height"`
	Device            string        `json:"device"`
	Baud              int           `json:"baud"`
	Remote            Remote        `json:"remote"`
	Logfile           string        `json:"logfile"`
	HistoryLength     int           `json:"history_length"`
	ShowTimestamp     bool          `json:"show_timestamp"`
	DebugLog          string        `json:"debug_log,omitempty"`
	CommonCommands    []string      `json:"common_commands"`
	ColorPatterns     ColorPatterns `json:"color_patterns"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		InputWindowHeight: 1,
		Device:            DefaultDevice,
		Baud:              1000000,
		Remote:            Remote{Port: 5001},
		Logfile:           filepath.Join(home, "splitterm.log"),
		HistoryLength:     1000,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".splitterm_config.json")
}

// Validate checks the resolved configuration. Endpoint selection is
// validated by the transport; this covers geometry, history and rules.
func (c *Config) Validate() error {
	if c.InputWindowHeight < 1 {
		return fmt.Errorf("config: input window height %d, need at least 1", c.InputWindowHeight)
	}
	if c.HistoryLength < 1 {
		return fmt.Errorf("config: history length %d, need at least 1", c.HistoryLength)
	}
	if c.Device == "" && c.Remote.Host == "" {
		return errors.New("config: no device and no remote host")
	}
	for _, p := range c.ColorPatterns {
		if p.Pattern == "" {
			return fmt.Errorf("config: color pattern %q has no pattern", p.Name)
		}
	}
	return nil
}
