package textstats

import (
	"unicode"
	"unicode/utf16"
)

// Stats holds the counts for one piece of text. All fields are computed from
// the same preprocessed string.
type Stats struct {
	Words                   int `json:"words" yaml:"words"`
	CharsWithSpaces         int `json:"chars_with_spaces" yaml:"chars_with_spaces"`
	CharsWithoutSpaces      int `json:"chars_without_spaces" yaml:"chars_without_spaces"`
	CharsWithoutPunctuation int `json:"chars_without_punctuation" yaml:"chars_without_punctuation"`
}

// IsZero reports whether all counts are zero.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// Analyze preprocesses text according to opts and counts it. Empty and
// whitespace-only input yields the zero Stats without preprocessing.
//
// Character counts are in UTF-16 code units, so a character outside the
// Basic Multilingual Plane (most emoji) counts as two.
func Analyze(text string, opts Options) Stats {
	if IsBlank(text) {
		return Stats{}
	}
	processed := Preprocess(text, opts)

	var st Stats
	inWord := false
	for _, r := range processed {
		n := utf16Len(r)
		st.CharsWithSpaces += n
		if isSpace(r) {
			inWord = false
			continue
		}
		st.CharsWithoutSpaces += n
		if isWordChar(r) {
			st.CharsWithoutPunctuation += n
		}
		if !inWord {
			st.Words++
			inWord = true
		}
	}
	return st
}

// IsBlank reports whether text is empty or contains only whitespace.
func IsBlank(text string) bool {
	for _, r := range text {
		if !isSpace(r) {
			return false
		}
	}
	return true
}

// isSpace is unicode.IsSpace without NEL (U+0085) and with the byte order
// mark (U+FEFF).
func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

// isWordChar reports whether r is a letter, combining mark, decimal digit or
// underscore. Letters are not restricted to ASCII.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.Is(unicode.Nd, r)
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// Invalid UTF-8 decodes to U+FFFD, a single code unit.
	return 1
}
