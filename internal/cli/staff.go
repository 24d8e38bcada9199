package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Staff account commands",
	}

	cmd.AddCommand(newStaffLoginCmd())
	cmd.AddCommand(newStaffLogoutCmd())
	cmd.AddCommand(newStaffWhoamiCmd())
	cmd.AddCommand(newStaffCreateCmd())

	return cmd
}

func newStaffLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/staff/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newStaffLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/staff/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newStaffWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Staff

			if err := client.Get("/api/v1/staff/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStaffCreateCmd() *cobra.Command {
	var user, pass, name, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "admin" && role != "operator" {
				return fmt.Errorf("--role must be admin or operator")
			}

			req := map[string]string{
				"username":     user,
				"password":     pass,
				"display_name": name,
				"role":         role,
			}
			var result Staff

			if err := client.Post("/api/v1/staff", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&role, "role", "operator", "Role: admin, operator")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
