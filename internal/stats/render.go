package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/wcplus/internal/textstats"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatCard = "card"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const noMetricsText = "No metrics enabled."

// Render writes the report in the given format. width is only used by the
// card format.
func Render(w io.Writer, r Report, format string, width int) error {
	switch format {
	case FormatText:
		return RenderText(w, r)
	case FormatCard:
		_, err := fmt.Fprintln(w, RenderCard(r, width))
		return err
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatYAML:
		return RenderYAML(w, r)
	}
	return fmt.Errorf("unknown output format %q (want text, card, json or yaml)", format)
}

// RenderText writes an aligned plain-text table of the visible metrics.
func RenderText(w io.Writer, r Report) error {
	var lines []string
	if r.Path != "" && r.Path != "-" {
		lines = append(lines, r.Path, "")
	}
	if len(r.Visible) == 0 {
		lines = append(lines, noMetricsText)
	} else {
		headers := []string{"Metric", "Document"}
		if r.Selection != nil {
			headers = append(headers, "Selection")
		}
		rows := make([][]string, 0, len(r.Visible))
		for _, m := range r.Visible {
			row := []string{m.Label, FormatCount(m.Value(r.Document))}
			if r.Selection != nil {
				row = append(row, FormatCount(m.Value(*r.Selection)))
			}
			rows = append(rows, row)
		}
		lines = append(lines, formatTable(headers, rows, map[int]bool{1: true, 2: true})...)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// RenderCard renders the report as bordered sections, side by side when
// they fit in width and stacked otherwise.
func RenderCard(r Report, width int) string {
	sections := []string{renderSection("Document", r.Document, r.Visible, false)}
	if r.Selection != nil {
		sections = append(sections, renderSection("Selection", *r.Selection, r.Visible, false))
	}
	if len(sections) == 1 {
		return sections[0]
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, sections[0], " ", sections[1])
	if width <= 0 || lipgloss.Width(joined) <= width {
		return joined
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderPanel renders the narrow stats column shown next to a document.
func RenderPanel(r Report, width int) string {
	parts := []string{renderSection("Document", r.Document, r.Visible, true)}
	if r.Selection != nil {
		parts = append(parts, renderSection("Selection", *r.Selection, r.Visible, true))
	}
	panel := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if width > 0 {
		panel = lipgloss.NewStyle().Width(width).Render(panel)
	}
	return panel
}

func renderSection(title string, st textstats.Stats, visible []Metric, short bool) string {
	lines := []string{cardTitleStyle.Render(title)}
	if len(visible) == 0 {
		lines = append(lines, mutedStyle.Render(noMetricsText))
		return cardStyle.Render(strings.Join(lines, "\n"))
	}
	rows := make([][]string, 0, len(visible))
	for _, m := range visible {
		label := m.Label
		if short {
			label = m.Short
		}
		rows = append(rows, []string{label, FormatCount(m.Value(st))})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		label, value := splitRow(line)
		lines = append(lines, labelStyle.Render(label)+valueStyle.Render(value))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// splitRow separates a two-column formatted row at the start of the
// right-aligned value, keeping the padding on the label side.
func splitRow(line string) (string, string) {
	i := strings.LastIndex(line, " ")
	if i < 0 {
		return line, ""
	}
	return line[:i+1], line[i+1:]
}

type machineReport struct {
	Path      string           `json:"path,omitempty" yaml:"path,omitempty"`
	Document  textstats.Stats  `json:"document" yaml:"document"`
	Selection *textstats.Stats `json:"selection,omitempty" yaml:"selection,omitempty"`
	Visible   []string         `json:"visible" yaml:"visible"`
}

func toMachine(r Report) machineReport {
	visible := make([]string, 0, len(r.Visible))
	for _, m := range r.Visible {
		visible = append(visible, m.Key)
	}
	path := r.Path
	if path == "-" {
		path = ""
	}
	return machineReport{
		Path:      path,
		Document:  r.Document,
		Selection: r.Selection,
		Visible:   visible,
	}
}

// RenderJSON writes the full report as indented JSON. Hidden metrics are
// still included; the visible list names the enabled ones.
func RenderJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toMachine(r)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// RenderYAML writes the full report as YAML.
func RenderYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toMachine(r)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}
