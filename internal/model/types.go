// Package model defines shared data structures.
package model

import "time"

// Mode selects how practice text is generated from a character set.
type Mode int

const (
	// ModeSequential shuffles the alphabet and splits it into runs of ten.
	ModeSequential Mode = iota
	// ModeGroupedNumeric builds digit/symbol groups laid out four per line.
	ModeGroupedNumeric
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeGroupedNumeric:
		return "grouped"
	default:
		return "unknown"
	}
}

// GroupConfig holds the parameters of grouped numeric generation.
type GroupConfig struct {
	GroupCount int
	MinDigits  int
	MaxDigits  int
}

// CharacterSet is a named source alphabet plus its generation mode.
type CharacterSet struct {
	ID          string
	Name        string
	Description string
	Chars       string
	Mode        Mode
	Groups      GroupConfig
}

// Record is the persisted score of one completed session.
type Record struct {
	Timestamp      int64  `json:"timestamp"`
	ElapsedSeconds int    `json:"time"`
	Mistakes       int    `json:"mistakes"`
	CharSetID      string `json:"charSetId"`
}

// Time returns the record timestamp as a local time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Theme is the persisted color scheme.
type Theme string

const (
	// ThemeDark is the default theme.
	ThemeDark Theme = "dark"
	// ThemeLight is the light theme.
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Config defines practice settings resolved from flags, env and the config file.
type Config struct {
	CharSetID string
	Theme     Theme
	DBPath    string
	LogFile   string
	// CharSetExplicit and ThemeExplicit are set when the value came from a
	// flag, the environment or the config file rather than the default.
	CharSetExplicit bool
	ThemeExplicit   bool
}

// RecordsConfig defines filters for the records command.
type RecordsConfig struct {
	CharSetID string
	Limit     int
	Window    int
}
