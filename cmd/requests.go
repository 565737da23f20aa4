package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Manage interests sent and received",
}

var requestsListCmd = &cobra.Command{
	Use:       "list [received|sent|accepted|rejected]",
	Short:     "List interests",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"received", "sent", "accepted", "rejected"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.requireSession()
		if err != nil {
			return err
		}

		kind := "received"
		if len(args) == 1 {
			kind = args[0]
		}

		var requests []internal.FriendRequest
		switch kind {
		case "received":
			requests, err = app.client.ReceivedRequests(cmd.Context(), sess.UserID)
		case "sent":
			requests, err = app.client.SentRequests(cmd.Context(), sess.UserID)
		case "accepted":
			var recv, sent []internal.FriendRequest
			recv, err = app.client.AcceptedReceived(cmd.Context(), sess.UserID)
			if err == nil {
				sent, err = app.client.AcceptedSent(cmd.Context(), sess.UserID)
			}
			requests = append(recv, sent...)
		case "rejected":
			var recv, sent []internal.FriendRequest
			recv, err = app.client.RejectedReceived(cmd.Context(), sess.UserID)
			if err == nil {
				sent, err = app.client.RejectedSent(cmd.Context(), sess.UserID)
			}
			requests = append(recv, sent...)
		default:
			return fmt.Errorf("unknown kind %q (use received, sent, accepted, or rejected)", kind)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch %s interests: %w", kind, err)
		}

		if len(requests) == 0 {
			fmt.Printf("No %s interests.\n", kind)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REQUEST\tFROM\tTO\tSTATUS")
		for _, r := range requests {
			from := r.SenderName
			if from == "" {
				from = strconv.FormatInt(r.SenderID, 10)
			}
			to := r.ReceiverName
			if to == "" {
				to = strconv.FormatInt(r.ReceiverID, 10)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.RequestID, from, to, r.Status)
		}
		return w.Flush()
	},
}

var requestsSendCmd = &cobra.Command{
	Use:   "send <profileId>",
	Short: "Send an interest to a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.requireSession()
		if err != nil {
			return err
		}

		receiver, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id %q", args[0])
		}

		if err := app.client.SendRequest(cmd.Context(), sess.UserID, receiver); err != nil {
			return fmt.Errorf("failed to send interest: %w", err)
		}
		fmt.Printf("Interest sent to profile %d.\n", receiver)
		return nil
	},
}

var requestsAcceptCmd = &cobra.Command{
	Use:   "accept <requestId>",
	Short: "Accept a received interest",
	Args:  cobra.ExactArgs(1),
	RunE:  respondRunE(true),
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject <requestId>",
	Short: "Reject a received interest",
	Args:  cobra.ExactArgs(1),
	RunE:  respondRunE(false),
}

// respondRunE builds the RunE for accept and reject, which differ only
// in the accept flag sent to the respond endpoint.
func respondRunE(accept bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.requireSession(); err != nil {
			return err
		}

		requestID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request id %q", args[0])
		}

		if err := app.client.RespondRequest(cmd.Context(), requestID, accept); err != nil {
			return fmt.Errorf("failed to respond to interest: %w", err)
		}

		if accept {
			fmt.Printf("Interest %d accepted. They are now in your chats.\n", requestID)
		} else {
			fmt.Printf("Interest %d rejected.\n", requestID)
		}
		return nil
	}
}

var requestsCancelCmd = &cobra.Command{
	Use:   "cancel <requestId>",
	Short: "Cancel a sent interest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.requireSession(); err != nil {
			return err
		}

		requestID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request id %q", args[0])
		}

		if err := app.client.DeleteSentRequest(cmd.Context(), requestID); err != nil {
			return fmt.Errorf("failed to cancel interest: %w", err)
		}
		fmt.Printf("Interest %d cancelled.\n", requestID)
		return nil
	},
}

func init() {
	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsSendCmd)
	requestsCmd.AddCommand(requestsAcceptCmd)
	requestsCmd.AddCommand(requestsRejectCmd)
	requestsCmd.AddCommand(requestsCancelCmd)
	rootCmd.AddCommand(requestsCmd)
}
