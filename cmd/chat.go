package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var chatInterval int

var chatCmd = &cobra.Command{
	Use:   "chat <profileId>",
	Short: "Open a live chat window",
	Long: `Open a conversation with a contact. The window re-syncs every few
seconds and marks inbound messages as seen.

Type a message and press enter to send. Commands:
  /block /unblock /report /clear /quit`,
	Args: cobra.ExactArgs(1),
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

		otherID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id %q", args[0])
		}

		otherName := fmt.Sprintf("user %d", otherID)
		if p, err := app.client.MyProfile(cmd.Context(), otherID); err == nil {
			premium := false
			if me, err := app.client.MyProfile(cmd.Context(), sess.UserID); err == nil {
				premium = internal.PremiumActive(me)
			}
			otherName = internal.DisplayName(*p, premium)
		}

		interval := app.cfg.PollInterval
		if chatInterval > 0 {
			interval = time.Duration(chatInterval) * time.Second
		}

		sync := internal.NewConversationSync(app.client, sess.UserID, otherID, interval)
		sync.OnUpdate = func(view internal.ConversationView) {
			fmt.Print(internal.RenderConversation(view, otherName))
		}
		sync.Start(cmd.Context())
		defer sync.Close()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "/quit":
				return nil
			case "/block":
				if sync.Block(cmd.Context()) {
					fmt.Println("Blocked.")
				}
			case "/unblock":
				if sync.Unblock(cmd.Context()) {
					fmt.Println("Unblocked.")
				}
			case "/report":
				if sync.Report(cmd.Context()) {
					fmt.Println("Reported.")
				}
			case "/clear":
				if sync.ClearChat(cmd.Context()) {
					fmt.Println("Conversation cleared.")
				}
			default:
				if err := sync.Send(cmd.Context(), line); err != nil {
					if errors.Is(err, internal.ErrBlocked) {
						fmt.Println("You have been blocked; the message was not sent.")
					} else {
						// The draft survives; sending again retries it.
						fmt.Printf("Send failed (%v). Press enter to retry.\n", err)
					}
				}
			}
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().IntVar(&chatInterval, "interval", 0, "Poll interval in seconds (default from config)")
	rootCmd.AddCommand(chatCmd)
}
