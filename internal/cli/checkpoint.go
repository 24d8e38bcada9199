package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Checkpoint actions",
	}

	cmd.AddCommand(newCheckpointActionCmd("gate-in", "Record a participant entering the campus gate"))
	cmd.AddCommand(newCheckpointActionCmd("payment", "Confirm a participant's fee payment"))
	cmd.AddCommand(newCheckpointActionCmd("check-in", "Check a participant in at the venue desk"))
	cmd.AddCommand(newCheckpointActionCmd("check-out", "Check a participant out of the venue"))
	cmd.AddCommand(newCheckpointActionCmd("gate-out", "Record a participant leaving the campus gate"))

	return cmd
}

func newCheckpointActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.ToUpper(args[0])
			var result Participant

			if err := client.Post("/api/v1/participants/"+id+"/"+action, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
