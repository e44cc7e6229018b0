package source

import (
	"fmt"
	"strconv"
	"strings"
)

// LineRange is an inclusive, 1-based range of lines.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange parses "N" or "N:M".
func ParseLineRange(value string) (LineRange, error) {
	value = strings.TrimSpace(value)
	startStr, endStr, hasEnd := strings.Cut(value, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return LineRange{}, fmt.Errorf("invalid line range %q: %w", value, err)
	}
	end := start
	if hasEnd {
		end, err = strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			return LineRange{}, fmt.Errorf("invalid line range %q: %w", value, err)
		}
	}
	if start < 1 {
		return LineRange{}, fmt.Errorf("invalid line range %q: lines start at 1", value)
	}
	if end < start {
		return LineRange{}, fmt.Errorf("invalid line range %q: end before start", value)
	}
	return LineRange{Start: start, End: end}, nil
}

// SelectLines returns the lines of text covered by r joined with newlines.
// A range is clamped to the lines of text; a range outside them selects
// nothing.
func SelectLines(text string, r LineRange) string {
	lines := strings.Split(text, "\n")
	start := max(r.Start, 1)
	end := min(r.End, len(lines))
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
