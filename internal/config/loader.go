package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the partially specified configuration read from disk. Pointer
// fields distinguish "absent" from zero so file values can override the
// command line without clobbering flags the file does not mention.
type File struct {
	InputWindowHeight *int           `json:"input_window_height" yaml:"input_window_height"`
	Device            *string        `json:"device" yaml:"device"`
	Baud              *int           `json:"baud" yaml:"baud"`
	Remote            *Remote        `json:"remote" yaml:"remote"`
	Logfile           *string        `json:"logfile" yaml:"logfile"`
	HistoryLength     *int           `json:"history_length" yaml:"history_length"`
	ShowTimestamp     *bool          `json:"show_timestamp" yaml:"show_timestamp"`
	DebugLog          *string        `json:"debug_log" yaml:"debug_log"`
	CommonCommands    []string       `json:"common_commands" yaml:"common_commands"`
	ColorPatterns     *ColorPatterns `json:"color_patterns" yaml:"color_patterns"`
}

// Load reads and decodes a config file. The format is chosen by
// extension: .toml, .yaml/.yml, anything else is treated as JSON.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = loadTOML(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &f, nil
}

// tomlFile mirrors File for TOML decoding. go-toml has no hook for
// order-preserving maps, so color patterns are decoded into a plain map
// and ordered by name.
type tomlFile struct {
	InputWindowHeight *int                    `toml:"input_window_height"`
	Device            *string                 `toml:"device"`
	Baud              *int                    `toml:"baud"`
	Remote            *Remote                 `toml:"remote"`
	Logfile           *string                 `toml:"logfile"`
	HistoryLength     *int                    `toml:"history_length"`
	ShowTimestamp     *bool                   `toml:"show_timestamp"`
	DebugLog          *string                 `toml:"debug_log"`
	CommonCommands    []string                `toml:"common_commands"`
	ColorPatterns     map[string]ColorPattern `toml:"color_patterns"`
}

func loadTOML(data []byte, f *File) error {
	var tf tomlFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return err
	}

	f.InputWindowHeight = tf.InputWindowHeight
	f.Device = tf.Device
	f.Baud = tf.Baud
	f.Remote = tf.Remote
	f.Logfile = tf.Logfile
	f.HistoryLength = tf.HistoryLength
	f.ShowTimestamp = tf.ShowTimestamp
	f.DebugLog = tf.DebugLog
	f.CommonCommands = tf.CommonCommands

	if tf.ColorPatterns != nil {
		names := make([]string, 0, len(tf.ColorPatterns))
		for name := range tf.ColorPatterns {
			names = append(names, name)
		}
		sort.Strings(names)
		cp := make(ColorPatterns, 0, len(names))
		for _, name := range names {
			cp = append(cp, NamedPattern{Name: name, ColorPattern: tf.ColorPatterns[name]})
		}
		f.ColorPatterns = &cp
	}
	return nil
}

// Apply overlays the file values onto c. Only keys present in the file
// change c.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}
	if f.InputWindowHeight != nil {
		c.InputWindowHeight = *f.InputWindowHeight
	}
	if f.Device != nil {
		c.Device = *f.Device
	}
	if f.Baud != nil {
		c.Baud = *f.Baud
	}
	if f.Remote != nil {
		c.Remote = *f.Remote
	}
	if f.Logfile != nil {
		c.Logfile = *f.Logfile
	}
	if f.HistoryLength != nil {
		c.HistoryLength = *f.HistoryLength
	}
	if f.ShowTimestamp != nil {
		c.ShowTimestamp = *f.ShowTimestamp
	}
	if f.DebugLog != nil {
		c.DebugLog = *f.DebugLog
	}
	if f.CommonCommands != nil {
		c.CommonCommands = f.CommonCommands
	}
	if f.ColorPatterns != nil {
		c.ColorPatterns = *f.ColorPatterns
	}
}

// Resolve produces the final configuration: base (defaults already
// overridden by flags) with the file at path applied on top. A missing
// file is not an error; a malformed one is.
func Resolve(base Config, path string) (Config, error) {
	if path == "" {
		return base, nil
	}
	f, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}
	f.Apply(&base)
	return base, nil
}
