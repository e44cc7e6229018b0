// Package textstats computes word and character counts for text.
package textstats

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Options controls which parts of the text are removed before counting.
type Options struct {
	ExcludeCodeBlocks bool
	ExcludeMarkdown   bool
}

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
	// lineStart rules only remove matches that begin a line.
	lineStart bool
}

var codeFencePattern = regexp.MustCompile("(?s)```.*?```")

// space matches the same set as isSpace. inline is any rune except a line
// terminator; paired markers never span lines.
const (
	space  = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`
	inline = `[^\n\r\x{2028}\x{2029}]`
)

// Order matters: bold runs before italic so that ** is not split into two
// italic markers.
var markdownRewrites = []rewrite{
	{regexp.MustCompile(`#{1,6}` + space + `+`), "", true},
	{regexp.MustCompile(`\*\*(` + inline + `+?)\*\*`), "$1", false},
	{regexp.MustCompile(`\*(` + inline + `+?)\*`), "$1", false},
	{regexp.MustCompile(`__(` + inline + `+?)__`), "$1", false},
	{regexp.MustCompile(`_(` + inline + `+?)_`), "$1", false},
	{regexp.MustCompile(`~~(` + inline + `+?)~~`), "$1", false},
	{regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`), "$1", false},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1", false},
	{regexp.MustCompile("`([^`]+)`"), "$1", false},
	{regexp.MustCompile(`>` + space + `+`), "", true},
	{regexp.MustCompile(`[-*+]` + space + `+`), "", true},
	{regexp.MustCompile(`\d+\.` + space + `+`), "", true},
}

// Preprocess strips fenced code blocks and markdown syntax from text as
// selected by opts. Each rule is applied once, in a fixed order, to the
// output of the previous rule. With no options set the text is returned
// unchanged.
func Preprocess(text string, opts Options) string {
	if opts.ExcludeCodeBlocks {
		text = StripCodeBlocks(text)
	}
	if opts.ExcludeMarkdown {
		text = StripMarkdown(text)
	}
	return text
}

// StripCodeBlocks removes every ``` fenced span, fences included. A trailing
// unpaired fence is left in place.
func StripCodeBlocks(text string) string {
	return codeFencePattern.ReplaceAllString(text, "")
}

// StripMarkdown replaces common markdown constructs with their inner text.
func StripMarkdown(text string) string {
	for _, rw := range markdownRewrites {
		if rw.lineStart {
			text = removeAtLineStart(rw.pattern, text)
			continue
		}
		text = rw.pattern.ReplaceAllString(text, rw.replacement)
	}
	return text
}

// removeAtLineStart deletes the matches of re that start at the beginning of
// the text or right after a line terminator (LF, CR, U+2028, U+2029).
func removeAtLineStart(re *regexp.Regexp, text string) string {
	matches := re.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !atLineStart(text, m[0]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		last = m[1]
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func atLineStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isLineTerminator(r)
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}
