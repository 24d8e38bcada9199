package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participant",
		Aliases: []string{"p"},
		Short:   "Participant commands",
	}

	cmd.AddCommand(newParticipantGetCmd())
	cmd.AddCommand(newParticipantListCmd())
	cmd.AddCommand(newParticipantRegisterCmd())
	cmd.AddCommand(newParticipantRemoveCmd())
	cmd.AddCommand(newParticipantLogsCmd())

	return cmd
}

func newParticipantGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a participant by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Get("/api/v1/participants/"+strings.ToUpper(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newParticipantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all participants (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ParticipantList

			if err := client.Get("/api/v1/participants", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newParticipantRegisterCmd() *cobra.Command {
	var name, email, phone, college string
	var events []string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a walk-in participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":  name,
				"email": email,
			}
			if phone != "" {
				req["phone"] = phone
			}
			if college != "" {
				req["college"] = college
			}
			if len(events) > 0 {
				req["events"] = events
			}

			var result Participant
			if err := client.Post("/api/v1/participants", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Participant name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&college, "college", "", "College or organisation")
	cmd.Flags().StringSliceVar(&events, "event", nil, "Registered event (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newParticipantRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a participant (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/participants/" + strings.ToUpper(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Deleted " + strings.ToUpper(args[0]))
			return nil
		},
	}
}

func newParticipantLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <id>",
		Short: "Show a participant's action log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActionLog

			if err := client.Get("/api/v1/participants/"+strings.ToUpper(args[0])+"/logs", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
