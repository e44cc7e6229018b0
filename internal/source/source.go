// Package source loads documents and resolves the selection to analyze.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wcplus/internal/textstats"
)

// Format names accepted by LoadOptions.Format.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatHTML = "html"
)

// Document is the text of a document and of the current selection.
type Document struct {
	Path      string
	Text      string
	Selection string
}

// HasSelection reports whether the selection contains anything but whitespace.
func (d Document) HasSelection() bool {
	return !textstats.IsBlank(d.Selection)
}

// LoadOptions controls how a document is read and which part is selected.
type LoadOptions struct {
	Format    string
	Lines     string
	Selection string
	Stdin     io.Reader
}

// Load reads the document at path. An empty path or "-" reads opts.Stdin.
func Load(path string, opts LoadOptions) (Document, error) {
	data, err := readAll(path, opts.Stdin)
	if err != nil {
		return Document{}, err
	}
	format, err := resolveFormat(path, opts.Format, data)
	if err != nil {
		return Document{}, err
	}

	text := string(data)
	if format == FormatHTML {
		text, err = ExtractHTMLText(bytes.NewReader(data))
		if err != nil {
			return Document{}, err
		}
	}

	doc := Document{Path: path, Text: text}
	if opts.Lines != "" && opts.Selection != "" {
		return Document{}, fmt.Errorf("--lines and --selection are mutually exclusive")
	}
	switch {
	case opts.Lines != "":
		r, err := ParseLineRange(opts.Lines)
		if err != nil {
			return Document{}, err
		}
		doc.Selection = SelectLines(text, r)
	case opts.Selection != "":
		doc.Selection = opts.Selection
	}
	return doc, nil
}

func readAll(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("no document: stdin is not available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func resolveFormat(path, format string, data []byte) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatAuto:
	case FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown input format %q (want auto, text or html)", format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML, nil
	case "":
		if looksLikeHTML(data) {
			return FormatHTML, nil
		}
	}
	return FormatText, nil
}

func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// Info identifies a version of a file on disk.
type Info struct {
	ModTime time.Time
	Size    int64
}

// Stat returns the modification time and size of path.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{ModTime: fi.ModTime(), Size: fi.Size()}, nil
}
