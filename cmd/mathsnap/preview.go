package main

import (
	"fmt"

	"github.com/at-ishikawa/mathsnap/internal/preview"
	"github.com/at-ishikawa/mathsnap/internal/upload"
	"github.com/spf13/cobra"
)

func newPreviewCommand() *cobra.Command {
	var contentType string
	var showDataURL bool

	command := &cobra.Command{
		Use:   "preview <image>",
		Short: "Validate an image and show its preview without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			candidate, err := upload.FromPath(args[0], contentType)
			if err != nil {
				return fmt.Errorf("upload.FromPath > %w", err)
			}
			validator := newValidator(cfg)
			if err := validator.Validate(candidate); err != nil {
				return fmt.Errorf("validator.Validate > %w", err)
			}
			image, err := validator.Load(candidate)
			if err != nil {
				return fmt.Errorf("validator.Load > %w", err)
			}

			p := preview.Build(image)
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, p.String()); err != nil {
				return fmt.Errorf("fmt.Fprintln > %w", err)
			}
			if showDataURL {
				if _, err := fmt.Fprintln(out, p.DataURL); err != nil {
					return fmt.Errorf("fmt.Fprintln > %w", err)
				}
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&contentType, "content-type", "", "Declared image type. Detected from the file when empty")
	flags.BoolVar(&showDataURL, "data-url", false, "Also print the image as a data URL")
	return command
}
