package model

import (
	"testing"

	"github.com/verte-zerg/wcplus/internal/textstats"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.ShowWords || !s.ShowCharsWithSpaces || !s.ShowCharsWithoutSpaces || !s.ShowCharsWithoutPunctuation {
		t.Fatalf("expected all metrics visible by default: %+v", s)
	}
	if !s.ShowSelectionStats || !s.OnlyShowSelectionWhenActive {
		t.Fatalf("unexpected selection defaults: %+v", s)
	}
	if s.ExcludeMarkdown || s.ExcludeCodeBlocks {
		t.Fatalf("expected no exclusions by default: %+v", s)
	}
	if s.SidebarPosition != SidebarRight || s.ShowSidebarOnStartup {
		t.Fatalf("unexpected display defaults: %+v", s)
	}
	if s.Options() != (textstats.Options{}) {
		t.Fatalf("expected zero options, got %+v", s.Options())
	}
}

func TestSettingsSetGet(t *testing.T) {
	s := DefaultSettings()
	if err := s.Set(KeyExcludeMarkdown, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(KeySidebarPosition, " Left "); err != nil {
		t.Fatalf("set position: %v", err)
	}
	if !s.Options().ExcludeMarkdown {
		t.Fatalf("expected markdown exclusion in options")
	}
	got, err := s.Get(KeySidebarPosition)
	if err != nil || got != "left" {
		t.Fatalf("unexpected position %q (%v)", got, err)
	}
	got, err = s.Get(KeyExcludeMarkdown)
	if err != nil || got != "true" {
		t.Fatalf("unexpected value %q (%v)", got, err)
	}
}

func TestSettingsSetRejectsBadInput(t *testing.T) {
	s := DefaultSettings()
	if err := s.Set("nope", "true"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := s.Set(KeyShowWords, "maybe"); err == nil {
		t.Fatalf("expected bool parse error")
	}
	if err := s.Set(KeySidebarPosition, "top"); err == nil {
		t.Fatalf("expected position error")
	}
	if s != DefaultSettings() {
		t.Fatalf("failed sets must not change settings: %+v", s)
	}
}

func TestSettingsToggle(t *testing.T) {
	s := DefaultSettings()
	v, err := s.Toggle(KeyShowWords)
	if err != nil || v || s.ShowWords {
		t.Fatalf("expected words hidden after toggle, got %v (%v)", v, err)
	}
	if _, err := s.Toggle(KeySidebarPosition); err == nil {
		t.Fatalf("expected error toggling a non-boolean setting")
	}
}

func TestSettingKeysCoverEverySetting(t *testing.T) {
	s := DefaultSettings()
	for _, key := range SettingKeys() {
		if _, err := s.Get(key); err != nil {
			t.Fatalf("key %q not readable: %v", key, err)
		}
	}
	if len(SettingKeys()) != 10 {
		t.Fatalf("expected 10 keys, got %d", len(SettingKeys()))
	}
}
