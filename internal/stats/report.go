// Package stats builds and renders word count reports.
package stats

import (
	"github.com/verte-zerg/wcplus/internal/model"
	"github.com/verte-zerg/wcplus/internal/source"
	"github.com/verte-zerg/wcplus/internal/textstats"
)

// Metric describes one field of textstats.Stats.
type Metric struct {
	Key   string
	Label string
	Short string
	Value func(textstats.Stats) int
}

// Metrics lists every metric in display order.
var Metrics = []Metric{
	{
		Key:   "words",
		Label: "Words",
		Short: "Words",
		Value: func(s textstats.Stats) int { return s.Words },
	},
	{
		Key:   "chars_with_spaces",
		Label: "Characters (with spaces)",
		Short: "Chars (with spaces)",
		Value: func(s textstats.Stats) int { return s.CharsWithSpaces },
	},
	{
		Key:   "chars_without_spaces",
		Label: "Characters (without spaces)",
		Short: "Chars (no spaces)",
		Value: func(s textstats.Stats) int { return s.CharsWithoutSpaces },
	},
	{
		Key:   "chars_without_punctuation",
		Label: "Characters (without punctuation)",
		Short: "Chars (no punctuation)",
		Value: func(s textstats.Stats) int { return s.CharsWithoutPunctuation },
	},
}

// Report contains precomputed data for rendering.
type Report struct {
	Path      string
	Document  textstats.Stats
	Selection *textstats.Stats
	Visible   []Metric
}

// BuildReport analyzes the document and, when it should be shown, the
// selection. Every metric is computed; settings only decide visibility.
func BuildReport(doc source.Document, s model.Settings) Report {
	opts := s.Options()
	report := Report{
		Path:     doc.Path,
		Document: textstats.Analyze(doc.Text, opts),
		Visible:  VisibleMetrics(s),
	}
	if ShowSelection(s, doc) {
		sel := textstats.Analyze(doc.Selection, opts)
		report.Selection = &sel
	}
	return report
}

// ShowSelection reports whether the selection section is displayed.
func ShowSelection(s model.Settings, doc source.Document) bool {
	if !s.ShowSelectionStats {
		return false
	}
	if s.OnlyShowSelectionWhenActive && !doc.HasSelection() {
		return false
	}
	return true
}

// VisibleMetrics returns the metrics enabled in s, in display order.
func VisibleMetrics(s model.Settings) []Metric {
	enabled := []bool{
		s.ShowWords,
		s.ShowCharsWithSpaces,
		s.ShowCharsWithoutSpaces,
		s.ShowCharsWithoutPunctuation,
	}
	out := make([]Metric, 0, len(Metrics))
	for i, m := range Metrics {
		if enabled[i] {
			out = append(out, m)
		}
	}
	return out
}
