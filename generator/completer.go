package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Completer runs a Request against an LLMClient and never fails upward:
// a remote error comes back as a ResultRecovered whose Text describes it.
type Completer struct {
	llm    LLMClient
	demo   bool
	logger *zap.Logger
}

// NewCompleter wraps llm. A nil llm puts the Completer in demo mode.
func NewCompleter(llm LLMClient, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Completer{llm: llm, logger: logger}
	if llm == nil {
		c.llm = DemoLLM{}
		c.demo = true
	}
	return c
}

// Demo reports whether the Completer returns placeholder text.
func (c *Completer) Demo() bool {
	return c.demo
}

// Complete issues at most one call to the underlying client.
func (c *Completer) Complete(ctx context.Context, req Request) Result {
	if c.demo {
		text, err := c.llm.Complete(ctx, req)
		if err != nil {
			return recovered(err)
		}
		return Result{Kind: ResultDemo, Text: text}
	}

	start := time.Now()
	text, err := c.llm.Complete(ctx, req)
	fields := []zap.Field{
		zap.String("stage", string(req.Stage)),
		zap.String("model", req.Model),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		c.logger.Error("llm call failed", append(fields, zap.Error(err))...)
		return recovered(err)
	}
	c.logger.Debug("llm call complete", append(fields, zap.Int("chars", len(text)))...)
	return Result{Kind: ResultGenerated, Text: text}
}

func recovered(err error) Result {
	return Result{
		Kind: ResultRecovered,
		Text: fmt.Sprintf("Error: %s. Please check your API key and try again.", err),
		Err:  err,
	}
}
