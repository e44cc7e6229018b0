package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/wcplus/internal/logging"
	"github.com/verte-zerg/wcplus/internal/model"
	"github.com/verte-zerg/wcplus/internal/stats"
	"github.com/verte-zerg/wcplus/internal/store"
	"github.com/verte-zerg/wcplus/internal/textstats"
)

type jsonReport struct {
	Path      string           `json:"path"`
	Document  textstats.Stats  `json:"document"`
	Selection *textstats.Stats `json:"selection"`
	Visible   []string         `json:"visible"`
}

func isolateDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(logging.EnvLevel, "")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func runJSONReport(t *testing.T, stdin string, args ...string) jsonReport {
	t.Helper()
	out, err := execute(t, stdin, append([]string{"report", "--format", "json"}, args...)...)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var r jsonReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return r
}

func TestReportFromStdin(t *testing.T) {
	isolateDirs(t)
	r := runJSONReport(t, "Hello, world!")
	want := textstats.Stats{Words: 2, CharsWithSpaces: 13, CharsWithoutSpaces: 12, CharsWithoutPunctuation: 10}
	if diff := cmp.Diff(want, r.Document); diff != "" {
		t.Fatalf("document stats mismatch (-want +got):\n%s", diff)
	}
	if r.Path != "" || r.Selection != nil {
		t.Fatalf("unexpected path or selection: %+v", r)
	}
	if len(r.Visible) != 4 {
		t.Fatalf("expected every metric visible, got %v", r.Visible)
	}
}

func TestReportDefaultsToTextWhenPiped(t *testing.T) {
	isolateDirs(t)
	out, err := execute(t, "one two three")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Words") || !strings.Contains(out, "3") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestReportSettingsPrecedence(t *testing.T) {
	dir := isolateDirs(t)
	doc := filepath.Join(dir, "note.md")
	content := "# Title\n```\ncode here\n```\n**bold**"
	if err := os.WriteFile(doc, []byte(content), 0o600); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	if got := runJSONReport(t, "", doc).Document.Words; got != 7 {
		t.Fatalf("expected 7 words without exclusions, got %d", got)
	}

	cfgPath := filepath.Join(dir, "config", "wcplus", "config.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cfgPath, []byte("[counting]\nexclude-markdown = true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := execute(t, "", "settings", "set", "exclude-code-blocks", "true"); err != nil {
		t.Fatalf("settings set: %v", err)
	}
	r := runJSONReport(t, "", doc)
	if r.Document.Words != 2 || r.Document.CharsWithoutSpaces != 9 {
		t.Fatalf("expected config and stored settings applied, got %+v", r.Document)
	}
	if r.Path != doc {
		t.Fatalf("expected path %q, got %q", doc, r.Path)
	}

	r = runJSONReport(t, "", "--exclude-markdown=false", doc)
	if r.Document.Words != 3 || r.Document.CharsWithoutSpaces != 14 {
		t.Fatalf("expected flag to override config, got %+v", r.Document)
	}
}

func TestReportSelectionByLines(t *testing.T) {
	isolateDirs(t)
	r := runJSONReport(t, "one\ntwo three\nfour", "--lines", "2:3")
	if r.Selection == nil || r.Selection.Words != 3 {
		t.Fatalf("expected 3 selected words, got %+v", r.Selection)
	}
	if _, err := execute(t, "x", "report", "--lines", "1", "--selection", "x"); err == nil {
		t.Fatalf("expected conflicting selection error")
	}
}

func TestSettingsSetListReset(t *testing.T) {
	isolateDirs(t)
	if _, err := execute(t, "", "settings", "set", "sidebar-position", "LEFT"); err != nil {
		t.Fatalf("settings set: %v", err)
	}
	out, err := execute(t, "", "settings")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got := settingValue(out, model.KeySidebarPosition); got != "left" {
		t.Fatalf("expected stored position, got %q in:\n%s", got, out)
	}
	if _, err := execute(t, "", "settings", "reset", "sidebar-position"); err != nil {
		t.Fatalf("settings reset: %v", err)
	}
	out, err = execute(t, "", "settings")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got := settingValue(out, model.KeySidebarPosition); got != "right" {
		t.Fatalf("expected default position after reset, got %q", got)
	}
}

func TestSettingsRejectsBadInput(t *testing.T) {
	isolateDirs(t)
	if _, err := execute(t, "", "settings", "set", "no-such-key", "true"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := execute(t, "", "settings", "set", "show-words", "sometimes"); err == nil {
		t.Fatalf("expected invalid value error")
	}
	if _, err := execute(t, "", "settings", "reset", "no-such-key"); err == nil {
		t.Fatalf("expected unknown key error on reset")
	}
}

func settingValue(out, key string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == key {
			return fields[1]
		}
	}
	return ""
}

func TestLoadSettingsSkipsStaleStoredValues(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "wcplus.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	ctx := context.Background()
	if err := st.SaveSetting(ctx, model.KeyShowWords, "maybe"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.SaveSetting(ctx, model.KeyExcludeMarkdown, "true"); err != nil {
		t.Fatalf("save: %v", err)
	}

	var logs bytes.Buffer
	settings, err := loadSettings(ctx, filepath.Join(dir, "missing.toml"), st, logging.New(&logs, false))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !settings.ShowWords || !settings.ExcludeMarkdown {
		t.Fatalf("unexpected settings: %+v", settings)
	}
	if !strings.Contains(logs.String(), "ignoring stored setting") || !strings.Contains(logs.String(), model.KeyShowWords) {
		t.Fatalf("expected warning for stale key, got %q", logs.String())
	}
}

func TestLoadSettingsRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[display]\nsidebar-position = \"top\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadSettings(context.Background(), path, nil, logging.Discard()); err == nil {
		t.Fatalf("expected invalid config error")
	}
}

func TestResolveOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	format, width := resolveOutputFormat(false, stats.FormatText, &buf)
	if format != stats.FormatText || width != defaultCardWidth {
		t.Fatalf("expected text for non-terminal output, got %q/%d", format, width)
	}
	format, _ = resolveOutputFormat(true, stats.FormatYAML, &buf)
	if format != stats.FormatYAML {
		t.Fatalf("expected explicit format kept, got %q", format)
	}
}
