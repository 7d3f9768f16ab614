package cli

import (
	"github.com/spf13/cobra"
)

func newPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Phone record operations",
	}

	cmd.AddCommand(newPhoneAddCmd())
	cmd.AddCommand(newPhoneDeleteCmd())

	return cmd
}

func newPhoneAddCmd() *cobra.Command {
	var (
		number  string
		privacy string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach a phone number to the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"number": number,
			}
			if privacy != "" {
				body["privacy"] = privacy
			}

			var result Mutation
			if err := client.Patch("/accounts/own/phones", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&number, "number", "n", "", "Phone number (required)")
	cmd.Flags().StringVar(&privacy, "privacy", "", "Privacy level (players, private, public)")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newPhoneDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <phone-id>",
		Short: "Remove a phone number from the current account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result Mutation
			if err := client.Delete("/accounts/own/phones/"+args[0], &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
