package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"paper2code/artifact"
	"paper2code/generator"
)

// GeneratedDir is the sub-directory of the repository directory that receives
// files extracted from a coding response.
const GeneratedDir = "generated"

// Options are the per-run inputs, one field per stage flag.
type Options struct {
	Stage         generator.Stage
	PaperName     string
	PaperFormat   string
	JSONPath      string
	LaTeXPath     string
	Model         string
	Temperature   float64
	MaxTokens     int
	OutputDir     string
	OutputRepoDir string
	ExtractFiles  bool
}

// Outcome describes what a run produced.
type Outcome struct {
	Stage          generator.Stage
	PaperName      string
	Result         generator.Result
	ResponsePath   string
	ScaffoldPaths  []string
	ExtractedPaths []string
}

type stageWording struct {
	activity string
	done     string
}

var wording = map[generator.Stage]stageWording{
	generator.StagePlanning:  {activity: "planning", done: "Planning"},
	generator.StageAnalyzing: {activity: "analysis", done: "Analysis"},
	generator.StageCoding:    {activity: "code", done: "Code generation"},
}

// Runner executes one stage: prompt, completion, artifacts, console echo.
type Runner struct {
	completer *generator.Completer
	writer    *artifact.Writer
	console   *Console
	logger    *zap.Logger
}

func New(completer *generator.Completer, writer *artifact.Writer, console *Console, logger *zap.Logger) (*Runner, error) {
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	if writer == nil {
		return nil, errors.New("artifact writer is required")
	}
	if console == nil {
		console = NewConsole(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{completer: completer, writer: writer, console: console, logger: logger}, nil
}

// Run checks the paper format, loads the paper and runs the stage. An invalid
// format returns generator.ErrInvalidPaperFormat before anything is read or written.
func (r *Runner) Run(ctx context.Context, opts Options) (Outcome, error) {
	format, err := generator.ParsePaperFormat(opts.PaperFormat)
	if err != nil {
		return Outcome{}, err
	}
	paper, err := generator.LoadPaper(format, opts.JSONPath, opts.LaTeXPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("loading paper: %w", err)
	}
	return r.RunPaper(ctx, opts, paper)
}

// RunPaper runs the stage on an already loaded paper.
func (r *Runner) RunPaper(ctx context.Context, opts Options, paper generator.Paper) (Outcome, error) {
	words, ok := wording[opts.Stage]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", generator.ErrUnknownStage, opts.Stage)
	}
	// name labels console and log lines only; generated text gets the
	// paper name exactly as given so demo output never depends on the paper.
	name := paper.Label(opts.PaperName)
	log := r.logger.With(zap.String("stage", string(opts.Stage)), zap.String("paper", name))

	prompt, err := generator.BuildPrompt(opts.Stage, paper)
	if err != nil {
		return Outcome{}, err
	}
	log.Debug("prompt built",
		zap.String("format", string(paper.Format)),
		zap.Int("user_chars", len(prompt.User)))

	r.console.Printf("[INFO] Generating %s for %s...", words.activity, name)
	result := r.completer.Complete(ctx, generator.Request{
		Stage:       opts.Stage,
		PaperName:   opts.PaperName,
		Prompt:      prompt,
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if result.Recovered() {
		log.Warn("completion recovered from error", zap.Error(result.Err))
	}

	out := Outcome{Stage: opts.Stage, PaperName: name, Result: result}
	out.ResponsePath, err = r.writer.Write(opts.OutputDir, opts.Stage.ResponseFile(), result.Text)
	if err != nil {
		return out, err
	}

	r.console.Response(result.Text)
	r.console.Printf("[INFO] %s completed for %s", words.done, name)
	log.Info("stage complete", zap.String("result", result.Kind.String()), zap.String("path", out.ResponsePath))

	if opts.Stage != generator.StageCoding || opts.OutputRepoDir == "" {
		return out, nil
	}

	out.ScaffoldPaths, err = r.writer.WriteScaffold(opts.OutputRepoDir, opts.PaperName)
	if err != nil {
		return out, err
	}
	r.console.Printf("[INFO] Demo repository created at %s", opts.OutputRepoDir)

	if opts.ExtractFiles {
		out.ExtractedPaths = r.writeExtracted(log, opts.OutputRepoDir, result)
	}
	return out, nil
}

func (r *Runner) writeExtracted(log *zap.Logger, repoDir string, result generator.Result) []string {
	if result.Kind != generator.ResultGenerated && result.Kind != generator.ResultDemo {
		return nil
	}
	dir := filepath.Join(repoDir, GeneratedDir)
	var paths []string
	for _, f := range generator.ExtractFiles(result.Text) {
		p, err := r.writer.Write(dir, f.Name, f.Content)
		if err != nil {
			log.Warn("skipping extracted file", zap.String("name", f.Name), zap.Error(err))
			continue
		}
		paths = append(paths, p)
	}
	if len(paths) > 0 {
		r.console.Printf("[INFO] Extracted %d file(s) to %s", len(paths), dir)
	}
	return paths
}
