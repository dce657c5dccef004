package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidPaperJSON is returned when a JSON paper does not parse.
var ErrInvalidPaperJSON = errors.New("paper is not valid JSON")

var paperPrettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Paper is the loaded research paper. It is read once and never modified.
type Paper struct {
	Format PaperFormat
	Source string
	raw    []byte
}

// NewPaper wraps already-read content. JSON content must be well formed.
func NewPaper(format PaperFormat, content []byte, source string) (Paper, error) {
	if _, err := ParsePaperFormat(string(format)); err != nil {
		return Paper{}, err
	}
	if format == FormatJSON && !gjson.ValidBytes(content) {
		return Paper{}, fmt.Errorf("%w: %s", ErrInvalidPaperJSON, source)
	}
	return Paper{Format: format, Source: source, raw: content}, nil
}

// LoadPaper reads the paper from the path that matches format.
func LoadPaper(format PaperFormat, jsonPath, latexPath string) (Paper, error) {
	var path string
	switch format {
	case FormatJSON:
		path = jsonPath
	case FormatLaTeX:
		path = latexPath
	default:
		return Paper{}, fmt.Errorf("%w: %q", ErrInvalidPaperFormat, format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Paper{}, err
	}
	return NewPaper(format, data, path)
}

// Serialize renders the paper for the prompt. JSON keeps its key order and is
// indented; LaTeX is returned as is.
func (p Paper) Serialize() string {
	if p.Format == FormatJSON {
		return strings.TrimRight(string(pretty.PrettyOptions(p.raw, paperPrettyOptions)), "\n")
	}
	return string(p.raw)
}

// Title returns the top-level "title" of a JSON paper, if any.
func (p Paper) Title() string {
	if p.Format != FormatJSON {
		return ""
	}
	return strings.TrimSpace(gjson.GetBytes(p.raw, "title").String())
}

// Label picks the display name for a run: the explicit name, then the JSON
// title, then the file name.
func (p Paper) Label(name string) string {
	if name != "" {
		return name
	}
	if t := p.Title(); t != "" {
		return t
	}
	if p.Source != "" {
		base := filepath.Base(p.Source)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "paper"
}
