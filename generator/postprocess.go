package generator

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// GeneratedFile is a code block the model placed under a file-name heading.
type GeneratedFile struct {
	Name     string
	Language string
	Content  string
}

// ExtractFiles 从 coding 阶段的 Markdown 回答中提取 "## main.py" 这类标题下的代码块。
// Only the first fenced block after each file heading is taken.
func ExtractFiles(markdown string) []GeneratedFile {
	src := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		files   []GeneratedFile
		current string
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			current = fileNameFromHeading(headingText(node, src))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if current == "" {
				return ast.WalkSkipChildren, nil
			}
			var buf bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			files = append(files, GeneratedFile{
				Name:     current,
				Language: string(node.Language(src)),
				Content:  buf.String(),
			})
			current = ""
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return files
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*ast.Text); ok {
					b.Write(tt.Segment.Value(src))
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// fileNameFromHeading accepts headings like "main.py" or "src/model.py".
func fileNameFromHeading(h string) string {
	h = strings.Trim(h, "`*: ")
	if h == "" || strings.ContainsAny(h, " \t") {
		return ""
	}
	if !strings.Contains(h, ".") {
		return ""
	}
	return h
}
