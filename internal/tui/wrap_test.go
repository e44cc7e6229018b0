package tui

import (
	"reflect"
	"testing"
)

func TestWrapLineBreaksAtSpaces(t *testing.T) {
	rows := wrapLine("one two three", 8)
	want := []string{"one two ", "three"}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %q, got %q", want, rows)
	}
}

func TestWrapLineHardBreaksLongWords(t *testing.T) {
	rows := wrapLine("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %q, got %q", want, rows)
	}
}

func TestWrapLineWideRunes(t *testing.T) {
	rows := wrapLine("日本語です", 4)
	want := []string{"日本", "語で", "す"}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %q, got %q", want, rows)
	}
}

func TestWrapLineEmptyAndUnbounded(t *testing.T) {
	if rows := wrapLine("", 10); len(rows) != 1 || rows[0] != "" {
		t.Fatalf("expected one empty row, got %q", rows)
	}
	if rows := wrapLine("a\tb", 0); len(rows) != 1 || rows[0] != "a    b" {
		t.Fatalf("expected expanded tab without wrapping, got %q", rows)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("日", 4); got != "日  " {
		t.Fatalf("unexpected padding %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}
