package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var (
	chatsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1)

	chatsNameStyle = lipgloss.NewStyle().
			Bold(true)

	chatsIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List your chat contacts",
	Long: `List contacts you can chat with: everyone whose interest you
accepted plus everyone who accepted yours.`,
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

		recv, err := app.client.AcceptedReceived(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("failed to fetch contacts: %w", err)
		}
		sent, err := app.client.AcceptedSent(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("failed to fetch contacts: %w", err)
		}
		contacts := append(recv, sent...)

		if len(contacts) == 0 {
			fmt.Println("No chats yet.")
			return nil
		}

		premium := false
		var profiles []internal.Profile
		if all, err := app.client.AllProfiles(cmd.Context()); err != nil {
			internal.LogWarn("failed to fetch profiles: %v", err)
		} else {
			profiles = all
		}
		if me, err := app.client.MyProfile(cmd.Context(), sess.UserID); err != nil {
			internal.LogWarn("failed to fetch own profile: %v", err)
		} else {
			premium = internal.PremiumActive(me)
		}

		fmt.Println(chatsHeaderStyle.Render("Chats"))

		listed := make(map[int64]bool)
		for _, c := range contacts {
			otherID := c.OtherParty(sess.UserID)
			if otherID == 0 || listed[otherID] {
				continue
			}
			listed[otherID] = true

			name := contactName(c, sess.UserID)
			for _, p := range profiles {
				if p.ID == otherID {
					name = internal.DisplayName(p, premium)
					break
				}
			}

			fmt.Printf("%s %s\n", chatsNameStyle.Render(name), chatsIDStyle.Render(fmt.Sprintf("(chat %d)", otherID)))
		}
		return nil
	},
}

// contactName falls back to the name carried on the request itself
// when no profile record is available.
func contactName(r internal.FriendRequest, self int64) string {
	if r.SenderID == self {
		if r.ReceiverName != "" {
			return r.ReceiverName
		}
	} else if r.SenderName != "" {
		return r.SenderName
	}
	return "User"
}

func init() {
	rootCmd.AddCommand(chatsCmd)
}
