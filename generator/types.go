package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownStage is returned for a stage name outside planning/analyzing/coding.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrInvalidPaperFormat is returned for a paper format other than JSON or LaTeX.
	ErrInvalidPaperFormat = errors.New("invalid paper format")
)

// Stage selects the prompt template, demo text and output file of a run.
type Stage string

const (
	StagePlanning  Stage = "planning"
	StageAnalyzing Stage = "analyzing"
	StageCoding    Stage = "coding"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StagePlanning, StageAnalyzing, StageCoding}

// ParseStage maps a stage name to a Stage.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Stages {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// ResponseFile is the name of the file the stage response is written to.
func (s Stage) ResponseFile() string {
	return string(s) + "_response.txt"
}

// PaperFormat is the encoding of the paper handed to the model.
type PaperFormat string

const (
	FormatJSON  PaperFormat = "JSON"
	FormatLaTeX PaperFormat = "LaTeX"
)

// ParsePaperFormat accepts exactly "JSON" or "LaTeX".
func ParsePaperFormat(s string) (PaperFormat, error) {
	switch PaperFormat(s) {
	case FormatJSON, FormatLaTeX:
		return PaperFormat(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaperFormat, s)
}

// Prompt 表示发送给 LLM 的消息集合：一条 system 加一条 user。
type Prompt struct {
	System string
	User   string
}

// Message is a role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Messages returns the conversation in send order.
func (p Prompt) Messages() []Message {
	return []Message{
		{Role: "system", Content: p.System},
		{Role: "user", Content: p.User},
	}
}

// Request is one generation call. Temperature and MaxTokens are passed
// through to the provider as given.
type Request struct {
	Stage       Stage
	PaperName   string
	Prompt      Prompt
	Model       string
	Temperature float64
	MaxTokens   int
}

// ResultKind tells callers where the text of a Result came from.
type ResultKind int

const (
	// ResultGenerated is real model output.
	ResultGenerated ResultKind = iota
	// ResultDemo is the canned placeholder used without a credential.
	ResultDemo
	// ResultRecovered carries an "Error: ..." text built from a failed call.
	ResultRecovered
)

func (k ResultKind) String() string {
	switch k {
	case ResultGenerated:
		return "generated"
	case ResultDemo:
		return "demo"
	case ResultRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Result is the outcome of a completion. Text is always set; Err is only set
// for ResultRecovered.
type Result struct {
	Kind ResultKind
	Text string
	Err  error
}

// Recovered reports whether the remote call failed and Text holds the error.
func (r Result) Recovered() bool {
	return r.Kind == ResultRecovered
}
