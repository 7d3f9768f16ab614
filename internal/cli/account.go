package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var (
		username  string
		password  string
		email     string
		firstname string
		lastname  string
		gender    string
		language  string
		birthdate string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"username":              username,
				"password":              password,
				"password_confirmation": password,
				"email":                 email,
			}
			if firstname != "" {
				body["firstname"] = firstname
			}
			if lastname != "" {
				body["lastname"] = lastname
			}
			if gender != "" {
				body["gender"] = gender
			}
			if language != "" {
				body["language"] = language
			}
			if birthdate != "" {
				body["birthdate"] = birthdate
			}

			var result Mutation
			if err := client.Post("/accounts", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address (required)")
	cmd.Flags().StringVar(&firstname, "firstname", "", "First name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "Last name")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (male, female, neutral)")
	cmd.Flags().StringVar(&language, "language", "", "Language (fr_FR, en_GB)")
	cmd.Flags().StringVar(&birthdate, "birthdate", "", "Birthdate (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountOwnCmd())
	cmd.AddCommand(newAccountUpdateCmd())
	cmd.AddCommand(newAccountSetGroupsCmd())

	return cmd
}

func newAccountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result AccountEnvelope
			if err := client.Get("/accounts/"+args[0], &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newAccountOwnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "own",
		Short: "Get the account tied to the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result AccountEnvelope
			if err := client.Get("/accounts/own", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newAccountUpdateCmd() *cobra.Command {
	var (
		password  string
		email     string
		firstname string
		lastname  string
		gender    string
		language  string
		birthdate string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the account tied to the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{}
			if password != "" {
				body["password"] = password
				body["password_confirmation"] = password
			}
			if email != "" {
				body["email"] = email
			}
			if firstname != "" {
				body["firstname"] = firstname
			}
			if lastname != "" {
				body["lastname"] = lastname
			}
			if gender != "" {
				body["gender"] = gender
			}
			if language != "" {
				body["language"] = language
			}
			if birthdate != "" {
				body["birthdate"] = birthdate
			}
			if len(body) == 0 {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}

			var result Mutation
			if err := client.Put("/accounts/own", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "New password")
	cmd.Flags().StringVarP(&email, "email", "e", "", "New email address")
	cmd.Flags().StringVar(&firstname, "firstname", "", "First name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "Last name")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (male, female, neutral)")
	cmd.Flags().StringVar(&language, "language", "", "Language (fr_FR, en_GB)")
	cmd.Flags().StringVar(&birthdate, "birthdate", "", "Birthdate (YYYY-MM-DD)")

	return cmd
}

func newAccountSetGroupsCmd() *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "set-groups <account-id>",
		Short: "Replace the group list of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"groups": groups,
			}

			var result Mutation
			if err := client.Put("/accounts/"+args[0], body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "Group id (repeatable)")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}
