package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	notifTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "View notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
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

		items, err := app.client.Notifications(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("failed to load notifications: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		for _, n := range items {
			marker := "  "
			if !n.Read {
				marker = unreadDotStyle.Render("● ")
			}
			line := fmt.Sprintf("%s[%d] %s", marker, n.ID, n.Title)
			if n.Message != "" {
				line += ": " + n.Message
			}
			if n.CreatedAt != "" {
				line += " " + notifTimeStyle.Render(n.CreatedAt)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one notification as read",
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

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id %q", args[0])
		}

		if err := app.client.MarkNotificationRead(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}
		fmt.Printf("Notification %d marked read.\n", id)
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
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

		if err := app.client.MarkAllNotificationsRead(cmd.Context(), sess.UserID); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		fmt.Println("All notifications marked read.")
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	rootCmd.AddCommand(notificationsCmd)
}
