package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block <profileId>",
	Short: "Block a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationRunE("block"),
}

var unblockCmd = &cobra.Command{
	Use:   "unblock <profileId>",
	Short: "Unblock a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationRunE("unblock"),
}

var reportCmd = &cobra.Command{
	Use:   "report <profileId>",
	Short: "Report a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  moderationRunE("report"),
}

// moderationRunE builds the RunE for the one-shot moderation commands.
// Each is a single idempotent-intent call against the pair endpoint.
func moderationRunE(action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.requireSession()
		if err != nil {
			return err
		}

		otherID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id %q", args[0])
		}

		switch action {
		case "block":
			err = app.client.Block(cmd.Context(), sess.UserID, otherID)
		case "unblock":
			err = app.client.Unblock(cmd.Context(), sess.UserID, otherID)
		case "report":
			err = app.client.Report(cmd.Context(), sess.UserID, otherID)
		}
		if err != nil {
			return fmt.Errorf("failed to %s profile %d: %w", action, otherID, err)
		}

		fmt.Printf("Done: %s profile %d.\n", action, otherID)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(unblockCmd)
	rootCmd.AddCommand(reportCmd)
}
