// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig  `toml:"practice"`
	Storage  StorageConfig   `toml:"storage"`
	CharSets []CharSetConfig `toml:"charsets"`

	// dir is the directory of the loaded file; relative chars-file paths
	// resolve against it.
	dir string
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	CharSet *string `toml:"charset"`
	Theme   *string `toml:"theme"`
	LogFile *string `toml:"log-file"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// CharSetConfig describes a user-defined character set.
type CharSetConfig struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Chars       string `toml:"chars"`
	CharsFile   string `toml:"chars-file"`
	Mode        string `toml:"mode"`
	GroupCount  int    `toml:"group-count"`
	MinDigits   int    `toml:"min-digits"`
	MaxDigits   int    `toml:"max-digits"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ParseMode maps a config mode name to a generation mode.
func ParseMode(name string) (model.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequential":
		return model.ModeSequential, nil
	case "grouped", "grouped-numeric", "numbergroups":
		return model.ModeGroupedNumeric, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want sequential or grouped)", name)
	}
}

// CharacterSets converts the user-defined sets. Validation of the result is
// left to the catalog.
func (c FileConfig) CharacterSets() ([]model.CharacterSet, error) {
	out := make([]model.CharacterSet, 0, len(c.CharSets))
	for i, cs := range c.CharSets {
		mode, err := ParseMode(cs.Mode)
		if err != nil {
			return nil, fmt.Errorf("charsets[%d]: %w", i, err)
		}
		chars := cs.Chars
		if cs.CharsFile != "" {
			if chars != "" {
				return nil, fmt.Errorf("charsets[%d]: chars and chars-file are mutually exclusive", i)
			}
			chars, err = LoadCharsFile(resolveRelative(c.dir, cs.CharsFile))
			if err != nil {
				return nil, fmt.Errorf("charsets[%d]: failed to load chars file: %w", i, err)
			}
		}
		name := cs.Name
		if name == "" {
			name = cs.ID
		}
		out = append(out, model.CharacterSet{
			ID:          cs.ID,
			Name:        name,
			Description: cs.Description,
			Chars:       chars,
			Mode:        mode,
			Groups: model.GroupConfig{
				GroupCount: cs.GroupCount,
				MinDigits:  cs.MinDigits,
				MaxDigits:  cs.MaxDigits,
			},
		})
	}
	return out, nil
}
