package main

import (
	"fmt"
	"io"
	"os"

	"github.com/at-ishikawa/mathsnap/internal/cli"
	"github.com/at-ishikawa/mathsnap/internal/render"
	"github.com/at-ishikawa/mathsnap/internal/upload"
	"github.com/at-ishikawa/mathsnap/internal/workflow"
	"github.com/spf13/cobra"
)

// batchDisplay reports progress on stderr and leaves the result to the chosen format
type batchDisplay struct {
	*cli.TerminalDisplay
}

func (batchDisplay) ShowResult(render.View) {}

func newSolveCommand() *cobra.Command {
	format := Format(render.FormatText)
	var outputPath string
	var contentType string

	command := &cobra.Command{
		Use:   "solve <image>",
		Short: "Upload an image of a math problem and print the solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if render.Format(format) == render.FormatPDF && outputPath == "" {
				return fmt.Errorf("--output is required for the %s format", format)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			candidate, err := upload.FromPath(args[0], contentType)
			if err != nil {
				return fmt.Errorf("upload.FromPath > %w", err)
			}

			client := newSolverClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			display := batchDisplay{TerminalDisplay: cli.NewTerminalDisplay(cmd.ErrOrStderr())}
			flow := workflow.New(client, display, newValidator(cfg))
			if err := flow.Select(candidate); err != nil {
				return &shownError{err: fmt.Errorf("flow.Select > %w", err)}
			}
			view, err := flow.Submit(cmd.Context())
			if err != nil {
				return &shownError{err: fmt.Errorf("flow.Submit > %w", err)}
			}

			options := render.Options{
				TemplatePath: cfg.Templates.ReportTemplate,
				ImageName:    candidate.Name,
			}
			return writeView(cmd.OutOrStdout(), outputPath, render.Format(format), view, options)
		},
	}

	flags := command.Flags()
	flags.VarP(&format, "format", "f", fmt.Sprintf("Output format. Possible values are %v", render.AllFormats))
	flags.StringVarP(&outputPath, "output", "o", "", "Write the result to a file instead of stdout")
	flags.StringVar(&contentType, "content-type", "", "Declared image type. Detected from the file when empty")
	return command
}

func writeView(stdout io.Writer, outputPath string, format render.Format, view render.View, options render.Options) error {
	if format == render.FormatPDF {
		if err := render.WritePDF(outputPath, view, options); err != nil {
			return fmt.Errorf("render.WritePDF > %w", err)
		}
		return nil
	}
	if outputPath == "" {
		if err := render.Write(stdout, format, view, options); err != nil {
			return fmt.Errorf("render.Write > %w", err)
		}
		return nil
	}

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", outputPath, err)
	}
	defer func() {
		_ = output.Close()
	}()
	if err := render.Write(output, format, view, options); err != nil {
		return fmt.Errorf("render.Write > %w", err)
	}
	return nil
}
