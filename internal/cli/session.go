package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		username   string
		password   string
		expiration int
		noSave     bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session and store its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"username": username,
				"password": password,
			}
			if expiration > 0 {
				body["expiration"] = strconv.Itoa(expiration)
			}

			var result Login
			if err := client.Post("/sessions", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if !noSave {
				if err := cfg.SaveSession(result.Token); err != nil {
					out.PrintError(err)
					return err
				}
				client.SetSession(result.Token)
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	cmd.Flags().IntVar(&expiration, "expiration", 0, "Session lifetime in seconds")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not write the token to the session file")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session operations",
	}

	cmd.AddCommand(newSessionGetCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [session-id]",
		Short: "Look up a session (defaults to the stored one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			id := cfg.SessionID
			if len(args) > 0 {
				id = args[0]
			}

			var result Session
			if err := client.Get("/sessions/"+id, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
