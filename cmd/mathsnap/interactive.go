package main

import (
	"github.com/at-ishikawa/mathsnap/internal/cli"
	"github.com/at-ishikawa/mathsnap/internal/workflow"
	"github.com/spf13/cobra"
)

func newInteractiveCommand() *cobra.Command {
	var contentType string

	command := &cobra.Command{
		Use:   "interactive",
		Short: "Choose, drop and submit images in a terminal session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newSolverClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			display := cli.NewTerminalDisplay(cmd.OutOrStdout())
			flow := workflow.New(client, display, newValidator(cfg))
			return cli.NewInteractiveSolveCLI(flow, display, cmd.InOrStdin(), contentType).
				Run(cmd.Context())
		},
	}
	command.Flags().StringVar(&contentType, "content-type", "", "Declared image type. Detected from each file when empty")
	return command
}
