package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if fprintfErr := reportError(os.Stderr, err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// shownError is an error the display has already alerted the user about
type shownError struct {
	err error
}

func (e *shownError) Error() string {
	return e.err.Error()
}

func (e *shownError) Unwrap() error {
	return e.err
}

// reportError writes err unless the user has already seen it.
// The details of a shown error are still logged at debug level.
func reportError(w io.Writer, err error) error {
	var shown *shownError
	if errors.As(err, &shown) {
		slog.Default().Debug("command failed", "error", err)
		return nil
	}
	_, fprintfErr := fmt.Fprintf(w, "failed to execute a command: %+v\n", err)
	return fprintfErr
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "mathsnap",
		Short:         "Solve a math problem from a photo of it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newSolveCommand(),
		newInteractiveCommand(),
		newPreviewCommand(),
		newStatusCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode.
// Users are told about rejected images and failed submissions by the display,
// so only errors are logged unless debugging. Logs go to stderr so that results
// on stdout can be piped.
func setupLogger(debugMode bool) {
	logLevel := slog.LevelError
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
