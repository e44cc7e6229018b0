// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/wcplus/internal/textstats"
)

// SidebarPosition is the side of the live view the stats panel sits on.
type SidebarPosition string

// Sidebar positions.
const (
	SidebarLeft  SidebarPosition = "left"
	SidebarRight SidebarPosition = "right"
)

// ParseSidebarPosition validates a position name.
func ParseSidebarPosition(value string) (SidebarPosition, error) {
	switch SidebarPosition(strings.ToLower(strings.TrimSpace(value))) {
	case SidebarLeft:
		return SidebarLeft, nil
	case SidebarRight:
		return SidebarRight, nil
	}
	return "", fmt.Errorf("invalid sidebar position %q (want left or right)", value)
}

// Settings defines what is counted and which results are shown.
type Settings struct {
	ShowWords                   bool
	ShowCharsWithSpaces         bool
	ShowCharsWithoutSpaces      bool
	ShowCharsWithoutPunctuation bool

	ShowSidebarOnStartup bool
	SidebarPosition      SidebarPosition

	ExcludeMarkdown   bool
	ExcludeCodeBlocks bool

	ShowSelectionStats          bool
	OnlyShowSelectionWhenActive bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ShowWords:                   true,
		ShowCharsWithSpaces:         true,
		ShowCharsWithoutSpaces:      true,
		ShowCharsWithoutPunctuation: true,
		ShowSidebarOnStartup:        false,
		SidebarPosition:             SidebarRight,
		ExcludeMarkdown:             false,
		ExcludeCodeBlocks:           false,
		ShowSelectionStats:          true,
		OnlyShowSelectionWhenActive: true,
	}
}

// Options returns the preprocessing options for analysis.
func (s Settings) Options() textstats.Options {
	return textstats.Options{
		ExcludeCodeBlocks: s.ExcludeCodeBlocks,
		ExcludeMarkdown:   s.ExcludeMarkdown,
	}
}

// Setting keys, shared by the config file, the settings store and the CLI.
const (
	KeyShowWords                   = "show-words"
	KeyShowCharsWithSpaces         = "show-chars-with-spaces"
	KeyShowCharsWithoutSpaces      = "show-chars-without-spaces"
	KeyShowCharsWithoutPunctuation = "show-chars-without-punctuation"
	KeyShowSidebarOnStartup        = "show-sidebar-on-startup"
	KeySidebarPosition             = "sidebar-position"
	KeyExcludeMarkdown             = "exclude-markdown"
	KeyExcludeCodeBlocks           = "exclude-code-blocks"
	KeyShowSelectionStats          = "show-selection-stats"
	KeyOnlyShowSelectionWhenActive = "only-show-selection-when-active"
)

var settingKeys = []string{
	KeyShowWords,
	KeyShowCharsWithSpaces,
	KeyShowCharsWithoutSpaces,
	KeyShowCharsWithoutPunctuation,
	KeyShowSidebarOnStartup,
	KeySidebarPosition,
	KeyExcludeMarkdown,
	KeyExcludeCodeBlocks,
	KeyShowSelectionStats,
	KeyOnlyShowSelectionWhenActive,
}

// SettingKeys lists every setting key in display order.
func SettingKeys() []string {
	return append([]string(nil), settingKeys...)
}

func (s *Settings) boolField(key string) *bool {
	switch key {
	case KeyShowWords:
		return &s.ShowWords
	case KeyShowCharsWithSpaces:
		return &s.ShowCharsWithSpaces
	case KeyShowCharsWithoutSpaces:
		return &s.ShowCharsWithoutSpaces
	case KeyShowCharsWithoutPunctuation:
		return &s.ShowCharsWithoutPunctuation
	case KeyShowSidebarOnStartup:
		return &s.ShowSidebarOnStartup
	case KeyExcludeMarkdown:
		return &s.ExcludeMarkdown
	case KeyExcludeCodeBlocks:
		return &s.ExcludeCodeBlocks
	case KeyShowSelectionStats:
		return &s.ShowSelectionStats
	case KeyOnlyShowSelectionWhenActive:
		return &s.OnlyShowSelectionWhenActive
	}
	return nil
}

// Get returns the string form of a setting.
func (s *Settings) Get(key string) (string, error) {
	if key == KeySidebarPosition {
		return string(s.SidebarPosition), nil
	}
	field := s.boolField(key)
	if field == nil {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return strconv.FormatBool(*field), nil
}

// Set parses value and assigns it to the setting named by key.
func (s *Settings) Set(key, value string) error {
	if key == KeySidebarPosition {
		pos, err := ParseSidebarPosition(value)
		if err != nil {
			return err
		}
		s.SidebarPosition = pos
		return nil
	}
	field := s.boolField(key)
	if field == nil {
		return fmt.Errorf("unknown setting %q", key)
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: want true or false", value, key)
	}
	*field = parsed
	return nil
}

// Toggle flips a boolean setting and returns its new value.
func (s *Settings) Toggle(key string) (bool, error) {
	field := s.boolField(key)
	if field == nil {
		return false, fmt.Errorf("setting %q cannot be toggled", key)
	}
	*field = !*field
	return *field, nil
}
