// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wcplus/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Metrics   MetricsConfig   `toml:"metrics"`
	Display   DisplayConfig   `toml:"display"`
	Counting  CountingConfig  `toml:"counting"`
	Selection SelectionConfig `toml:"selection"`
}

// MetricsConfig maps per-metric visibility.
type MetricsConfig struct {
	Words                   *bool `toml:"words"`
	CharsWithSpaces         *bool `toml:"chars-with-spaces"`
	CharsWithoutSpaces      *bool `toml:"chars-without-spaces"`
	CharsWithoutPunctuation *bool `toml:"chars-without-punctuation"`
}

// DisplayConfig maps live view settings.
type DisplayConfig struct {
	ShowSidebarOnStartup *bool   `toml:"show-sidebar-on-startup"`
	SidebarPosition      *string `toml:"sidebar-position"`
}

// CountingConfig maps preprocessing settings.
type CountingConfig struct {
	ExcludeMarkdown   *bool `toml:"exclude-markdown"`
	ExcludeCodeBlocks *bool `toml:"exclude-code-blocks"`
}

// SelectionConfig maps selection display settings.
type SelectionConfig struct {
	ShowSelectionStats          *bool `toml:"show-selection-stats"`
	OnlyShowSelectionWhenActive *bool `toml:"only-show-selection-when-active"`
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Apply overlays the values present in the file onto s.
func (c FileConfig) Apply(s *model.Settings) error {
	applyBool(&s.ShowWords, c.Metrics.Words)
	applyBool(&s.ShowCharsWithSpaces, c.Metrics.CharsWithSpaces)
	applyBool(&s.ShowCharsWithoutSpaces, c.Metrics.CharsWithoutSpaces)
	applyBool(&s.ShowCharsWithoutPunctuation, c.Metrics.CharsWithoutPunctuation)
	applyBool(&s.ShowSidebarOnStartup, c.Display.ShowSidebarOnStartup)
	applyBool(&s.ExcludeMarkdown, c.Counting.ExcludeMarkdown)
	applyBool(&s.ExcludeCodeBlocks, c.Counting.ExcludeCodeBlocks)
	applyBool(&s.ShowSelectionStats, c.Selection.ShowSelectionStats)
	applyBool(&s.OnlyShowSelectionWhenActive, c.Selection.OnlyShowSelectionWhenActive)
	if c.Display.SidebarPosition != nil {
		pos, err := model.ParseSidebarPosition(*c.Display.SidebarPosition)
		if err != nil {
			return fmt.Errorf("display.sidebar-position: %w", err)
		}
		s.SidebarPosition = pos
	}
	return nil
}

func applyBool(target *bool, value *bool) {
	if value == nil {
		return
	}
	*target = *value
}

// DefaultTemplate returns the commented config written by `wcplus config`.
func DefaultTemplate() string {
	d := model.DefaultSettings()
	return fmt.Sprintf(`# wcplus configuration
# Uncomment a value to enable it. Settings changed with "wcplus settings set"
# or from the live view override this file; CLI flags override both.

[metrics]
# words = %t
# chars-with-spaces = %t
# chars-without-spaces = %t
# chars-without-punctuation = %t

[display]
# show-sidebar-on-startup = %t   # Open the stats panel when "wcplus watch" starts
# sidebar-position = %q        # left or right

[counting]
# exclude-markdown = %t          # Strip markdown syntax before counting
# exclude-code-blocks = %t       # Drop fenced code blocks before counting

[selection]
# show-selection-stats = %t
# only-show-selection-when-active = %t   # Hide the selection section when nothing is selected
`,
		d.ShowWords,
		d.ShowCharsWithSpaces,
		d.ShowCharsWithoutSpaces,
		d.ShowCharsWithoutPunctuation,
		d.ShowSidebarOnStartup,
		string(d.SidebarPosition),
		d.ExcludeMarkdown,
		d.ExcludeCodeBlocks,
		d.ShowSelectionStats,
		d.OnlyShowSelectionWhenActive,
	)
}
