package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Metric", "Document", "Selection"}
	rows := [][]string{
		{"Words", "1,234", "5"},
		{"Chars (no spaces)", "10", "2"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Metric             Document  Selection" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Words                 1,234          5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Chars (no spaces)        10          2" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable(nil, [][]string{{"日本", "1"}, {"ab", "22"}}, map[int]bool{1: true})
	if lines[0] != "日本   1" || lines[1] != "ab    22" {
		t.Fatalf("unexpected wide-rune alignment: %q", lines)
	}
}

func TestFormatCount(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		12345:   "12,345",
		1234567: "1,234,567",
		-1234:   "-1,234",
		-999:    "-999",
		100000:  "100,000",
	}
	for n, want := range cases {
		if got := FormatCount(n); got != want {
			t.Fatalf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}
