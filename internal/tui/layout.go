package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	panelMaxWidth = 34
	panelMinWidth = 24
	panelGap      = 1
)

var (
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	gutterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	textStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2A2A2A"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
)

// panelWidth returns the stats panel width for a terminal width, or 0 when
// the terminal is too narrow to show it next to the document.
func panelWidth(width int) int {
	w := width / 3
	if w > panelMaxWidth {
		w = panelMaxWidth
	}
	if w < panelMinWidth {
		w = panelMinWidth
	}
	if width-w-panelGap < 10 {
		return 0
	}
	return w
}

func gutterWidth(lineCount int) int {
	return len(strconv.Itoa(maxInt(lineCount, 1))) + 1
}

// renderDocument lays out lines wrapped to width, with a line-number gutter.
// It returns the rendered rows and the first row index of every line.
func renderDocument(lines []string, cursor, selStart, selEnd, width int) (string, []int) {
	gutter := gutterWidth(len(lines))
	textWidth := width - gutter
	if textWidth < 1 {
		textWidth = 1
	}
	var rows []string
	offsets := make([]int, len(lines))
	for i, line := range lines {
		offsets[i] = len(rows)
		style := textStyle
		switch {
		case i >= selStart && i <= selEnd:
			style = selectedStyle
		case i == cursor:
			style = cursorLineStyle
		}
		for j, part := range wrapLine(line, textWidth) {
			num := ""
			if j == 0 {
				num = strconv.Itoa(i + 1)
			}
			prefix := gutterStyle.Render(strings.Repeat(" ", gutter-1-len(num)) + num + " ")
			rows = append(rows, prefix+style.Render(padRight(part, textWidth)))
		}
	}
	return strings.Join(rows, "\n"), offsets
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
