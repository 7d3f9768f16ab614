package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result HealthResult
			if err := client.Get("/health", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
