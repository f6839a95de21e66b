package main

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/mathsnap/internal/serverinfo"
	"github.com/at-ishikawa/mathsnap/internal/solver"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the solve server advertises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			index, err := serverinfo.NewReader(cfg.Server.BaseURL, cfg.Server.Timeout).Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("serverinfo.NewReader.Fetch > %w", err)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Server: %s\n", cfg.Server.BaseURL)
			fmt.Fprintf(&b, "Message: %s\n", index.Message)
			for _, path := range index.Paths() {
				fmt.Fprintf(&b, "  %s\t%s\n", path, index.Endpoints[path])
			}
			if !index.Supports(solver.SolvePath) {
				fmt.Fprintf(&b, "warning: the server does not advertise %s\n", solver.SolvePath)
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
				return fmt.Errorf("fmt.Fprint > %w", err)
			}
			return nil
		},
	}
}
