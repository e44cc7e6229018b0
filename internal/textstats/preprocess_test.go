package textstats

import "testing"

func TestPreprocessIdentityWithoutOptions(t *testing.T) {
	text := "# Title\n**bold** ```code``` [[link]] _x_"
	if got := Preprocess(text, Options{}); got != text {
		t.Fatalf("expected identity, got %q", got)
	}
}

func TestPreprocessCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline fence", "before ```code here``` after", "before  after"},
		{"multiline fence", "intro\n```go\nfmt.Println()\n```\noutro", "intro\n\noutro"},
		{"two blocks", "a ```x``` b ```y``` c", "a  b  c"},
		{"odd fence left", "a ```x``` b ``` c", "a  b ``` c"},
		{"single fence", "a ``` b", "a ``` b"},
		{"empty block", "``````", ""},
		{"markdown untouched", "**bold** ```x```", "**bold** "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.in, Options{ExcludeCodeBlocks: true})
			if got != tt.want {
				t.Fatalf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading and bold", "# Title\n**bold** text", "Title\nbold text"},
		{"heading levels", "###### six\n####### seven", "six\n####### seven"},
		{"hashtag kept", "#hashtag", "#hashtag"},
		{"heading mid line kept", "a # b", "a # b"},
		{"bold before italic", "***both***", "both"},
		{"italic", "an *emphasised* word", "an emphasised word"},
		{"underscore emphasis", "__bold__ and _it_", "bold and it"},
		{"strikethrough", "~~gone~~ now", "gone now"},
		{"wiki links", "[[Page]] and [[Page|alias]]", "Page and Page"},
		{"standard link", "see [label](http://example.com/a_b) here", "see label here"},
		{"inline code", "run `go test` now", "run go test now"},
		{"blockquote", "> quoted\n>no space", "quoted\n>no space"},
		{"unordered list", "- item\n* star\n+ plus", "item\nstar\nplus"},
		{"ordered list", "1. first\n10. tenth\n1.5 kept", "first\ntenth\n1.5 kept"},
		{"pairs stay on one line", "**a\nb**", "**a\nb**"},
		{"underscore inside words", "word_with_underscore", "wordwithunderscore"},
		{"snake case pairs", "a_b_c_d", "abc_d"},
		{"unpaired marker", "2 * 3 = 6", "2 * 3 = 6"},
		{"carriage return lines", "# Title\r- item\r> quote\r1. one", "Title\ritem\rquote\rone"},
		{"unicode line separators", "# Title\u2028- item\u2029> quote", "Title\u2028item\u2029quote"},
		{"marker after carriage return", "a*\r- b", "a*\rb"},
		{"marker mid line after cr line", "x\ra - b", "x\ra - b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.in, Options{ExcludeMarkdown: true})
			if got != tt.want {
				t.Fatalf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreprocessCodeBlocksBeforeMarkdown(t *testing.T) {
	in := "```\n**code**\n```\n**bold**"
	got := Preprocess(in, Options{ExcludeCodeBlocks: true, ExcludeMarkdown: true})
	if got != "\nbold" {
		t.Fatalf("unexpected output: %q", got)
	}

	// Without code block removal the inline code rule pairs the innermost
	// backticks of the two fences.
	got = Preprocess(in, Options{ExcludeMarkdown: true})
	if got != "``\ncode\n``\nbold" {
		t.Fatalf("unexpected markdown-only output: %q", got)
	}
}

func TestPreprocessStable(t *testing.T) {
	texts := []string{
		"# Title\n**bold** text",
		"- item with [[Link|label]]\n> quote with `code`",
		"plain words, nothing to strip",
		"1. first\n2. ~~second~~",
	}
	for _, text := range texts {
		for _, opts := range allOptions {
			once := Preprocess(text, opts)
			twice := Preprocess(once, opts)
			if once != twice {
				t.Fatalf("Preprocess(%q, %+v) not stable: %q then %q", text, opts, once, twice)
			}
		}
	}
}

func TestPreprocessRulesRunOnce(t *testing.T) {
	opts := Options{ExcludeMarkdown: true}
	once := Preprocess("before ```code here``` after", opts)
	if once != "before ``code here`` after" {
		t.Fatalf("unexpected first pass: %q", once)
	}
	if twice := Preprocess(once, opts); twice != "before `code here` after" {
		t.Fatalf("unexpected second pass: %q", twice)
	}
}
