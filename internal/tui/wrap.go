package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

type cell struct {
	r       rune
	width   int
	isSpace bool
}

func toCells(line string) []cell {
	out := make([]cell, 0, len(line))
	for _, r := range line {
		if r == '\t' {
			for i := 0; i < tabWidth; i++ {
				out = append(out, cell{r: ' ', width: 1, isSpace: true})
			}
			continue
		}
		out = append(out, cell{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

// wrapLine splits line into rows no wider than width display cells,
// breaking after the last space when one is available. An empty line yields
// one empty row.
func wrapLine(line string, width int) []string {
	cells := toCells(line)
	if width <= 0 {
		return []string{renderCells(cells)}
	}
	var rows []string
	row := make([]cell, 0, len(cells))
	rowWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if rowWidth+item.width > width && len(row) > 0 {
			if lastSpaceIdx >= 0 {
				rows = append(rows, renderCells(row[:lastSpaceIdx+1]))
				row = append([]cell{}, row[lastSpaceIdx+1:]...)
				rowWidth = rowWidthOf(row)
				lastSpaceIdx = lastSpaceIndex(row)
			} else {
				rows = append(rows, renderCells(row))
				row = row[:0]
				rowWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		row = append(row, item)
		rowWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(row) - 1
		}
		i++
	}
	rows = append(rows, renderCells(row))
	return rows
}

func rowWidthOf(row []cell) int {
	total := 0
	for _, item := range row {
		total += item.width
	}
	return total
}

func lastSpaceIndex(row []cell) int {
	for i := len(row) - 1; i >= 0; i-- {
		if row[i].isSpace {
			return i
		}
	}
	return -1
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
