package generator

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed demo/*.tmpl
var demoFS embed.FS

var demoTemplates = template.Must(template.ParseFS(demoFS, "demo/*.tmpl"))

// DemoLLM 不调用外部模型，按阶段返回固定的占位回答，便于没有密钥时本地调试。
type DemoLLM struct{}

func (DemoLLM) Complete(_ context.Context, req Request) (string, error) {
	return DemoText(req.Stage, req.PaperName)
}

// DemoText renders the placeholder response of a stage. It depends only on
// the stage and the paper label.
func DemoText(stage Stage, paperName string) (string, error) {
	if _, err := ParseStage(string(stage)); err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := demoTemplates.ExecuteTemplate(&sb, string(stage)+".tmpl", struct{ PaperName string }{paperName}); err != nil {
		return "", fmt.Errorf("rendering demo response: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
