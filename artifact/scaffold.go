package artifact

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed scaffold/*.tmpl
var scaffoldFS embed.FS

var scaffoldTemplates = template.Must(template.ParseFS(scaffoldFS, "scaffold/*.tmpl"))

// ScaffoldFiles are the fixed files of a coding-stage repository, in write order.
var ScaffoldFiles = []string{"main.py", "config.yaml", "requirements.txt", "README.md"}

// File is a named text artifact.
type File struct {
	Name    string
	Content string
}

// RenderScaffold fills the scaffold templates with the paper name.
func RenderScaffold(paperName string) ([]File, error) {
	files := make([]File, 0, len(ScaffoldFiles))
	data := struct{ PaperName string }{paperName}
	for _, name := range ScaffoldFiles {
		var sb strings.Builder
		if err := scaffoldTemplates.ExecuteTemplate(&sb, name+".tmpl", data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		files = append(files, File{Name: name, Content: sb.String()})
	}
	return files, nil
}

// WriteScaffold writes the scaffold files into dir and returns their paths.
// The content does not depend on what the model returned.
func (w *Writer) WriteScaffold(dir, paperName string) ([]string, error) {
	files, err := RenderScaffold(paperName)
	if err != nil {
		return nil, err
	}
	return w.WriteAll(dir, files)
}

// WriteAll writes files into dir, stopping at the first failure.
func (w *Writer) WriteAll(dir string, files []File) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := w.Write(dir, f.Name, f.Content)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
