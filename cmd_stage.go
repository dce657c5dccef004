package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"paper2code/config"
	"paper2code/generator"
	"paper2code/runner"
)

const invalidFormatMessage = "[ERROR] Invalid paper format. Please select either 'JSON' or 'LaTeX."

var stageShort = map[generator.Stage]string{
	generator.StagePlanning:  "Plan how to reproduce a paper",
	generator.StageAnalyzing: "Write implementation specifications for a paper",
	generator.StageCoding:    "Generate code for a paper and optionally a starter repository",
}

func newStageCmd(a *app, stage generator.Stage) *cobra.Command {
	opts := runner.Options{Stage: stage}

	cmd := &cobra.Command{
		Use:   string(stage),
		Short: stageShort[stage],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("model_name") && a.cfg.LLM.Model != "" {
				opts.Model = a.cfg.LLM.Model
			}
			rn, err := a.newRunner(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = rn.Run(cmd.Context(), opts)
			if errors.Is(err, generator.ErrInvalidPaperFormat) {
				// Reported, but the exit status stays zero.
				fmt.Fprintln(cmd.OutOrStdout(), invalidFormatMessage)
				return nil
			}
			return err
		},
	}

	bindStageFlags(cmd.Flags(), &opts)
	if stage == generator.StageCoding {
		cmd.Flags().StringVar(&opts.OutputRepoDir, "output_repo_dir", "", "directory for the starter repository files")
		cmd.Flags().BoolVar(&opts.ExtractFiles, "extract_files", false, "also write code blocks found in the response under <output_repo_dir>/generated")
	}
	return cmd
}

func bindStageFlags(fs *pflag.FlagSet, opts *runner.Options) {
	fs.StringVar(&opts.PaperName, "paper_name", "", "paper label used in messages and demo text")
	fs.StringVar(&opts.Model, "model_name", config.DefaultModel, "model identifier")
	fs.Float64Var(&opts.Temperature, "temperature", 1.0, "sampling temperature")
	fs.IntVar(&opts.MaxTokens, "max_tokens", 4000, "maximum tokens to generate")
	fs.StringVar(&opts.PaperFormat, "paper_format", string(generator.FormatJSON), "paper format: JSON or LaTeX")
	fs.StringVar(&opts.JSONPath, "pdf_json_path", "", "path to the paper in JSON format")
	fs.StringVar(&opts.LaTeXPath, "pdf_latex_path", "", "path to the paper in LaTeX format")
	fs.StringVar(&opts.OutputDir, "output_dir", "", "directory for the response file")
}
