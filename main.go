package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"paper2code/artifact"
	"paper2code/config"
	"paper2code/generator"
	"paper2code/runner"
)

func main() {
	root := newRootCmd(os.Getenv, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root flags are parsed.
type app struct {
	getenv     func(string) string
	stdout     io.Writer
	configPath string
	verbose    bool
	logFormat  string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd(getenv func(string) string, stdout io.Writer) *cobra.Command {
	a := &app{getenv: getenv, stdout: stdout}

	root := &cobra.Command{
		Use:           "paper2code",
		Short:         "Turn a research paper into a plan, an analysis and code with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("log_format") {
				cfg.Log.Format = a.logFormat
			}
			a.cfg = cfg
			a.logger, err = newLogger(cfg.Log, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML/JSON config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logs")
	pf.StringVar(&a.logFormat, "log_format", "console", "log encoding: console or json")

	for _, st := range generator.Stages {
		root.AddCommand(newStageCmd(a, st))
	}
	root.AddCommand(newServeCmd(a))
	return root
}

func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Sampling = nil
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if lc.Format != "json" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	level := zapcore.InfoLevel
	if lc.Level != "" {
		l, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// newRunner wires the completion client, artifact writer and console. The
// credential is resolved here, once, and handed to the client constructor.
func (a *app) newRunner(ctx context.Context, out io.Writer) (*runner.Runner, error) {
	apiKey := a.cfg.LLM.Credential(a.getenv)
	if apiKey == "" {
		a.logger.Warn(fmt.Sprintf("%s not found. Using demo mode.", a.cfg.LLM.KeyEnv()))
	}
	llm, err := buildLLM(ctx, a.cfg.LLM, apiKey)
	if err != nil {
		return nil, err
	}
	completer := generator.NewCompleter(llm, a.logger.Named("llm"))
	writer := artifact.NewWriter(a.logger.Named("artifact"))
	return runner.New(completer, writer, runner.NewConsole(out), a.logger)
}

// buildLLM returns nil without a credential, which selects demo responses.
func buildLLM(ctx context.Context, lc config.LLMConfig, apiKey string) (generator.LLMClient, error) {
	if apiKey == "" {
		return nil, nil
	}
	settings := &generator.LLMSettings{
		Provider: lc.Provider,
		Model:    lc.Model,
		APIKey:   apiKey,
		BaseURL:  lc.BaseURL,
	}
	switch lc.Provider {
	case "", config.ProviderOpenAI:
		return generator.NewOpenAILLMFromConfig(settings)
	case config.ProviderDeepSeek:
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if lc.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case config.ProviderGemini:
		return generator.NewGeminiLLMFromConfig(ctx, settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", lc.Provider)
	}
}
