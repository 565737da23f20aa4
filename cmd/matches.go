package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var (
	matchesHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	matchesCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Browse member profiles",
	Long: `List browsable member profiles. Names are masked unless your
premium plan is active.`,
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

		profiles, err := app.client.AllProfiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch profiles: %w", err)
		}

		premium := false
		if me, err := app.client.MyProfile(cmd.Context(), sess.UserID); err != nil {
			internal.LogWarn("failed to fetch own profile: %v", err)
		} else {
			premium = internal.PremiumActive(me)
		}

		fmt.Println(matchesHeaderStyle.Render("Matches"))
		fmt.Println(matchesCountStyle.Render(fmt.Sprintf("%d profiles", len(profiles))))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCITY\tPHOTO")
		for _, p := range profiles {
			if p.ID == sess.UserID {
				continue
			}
			photo := ""
			if p.PhotoURL != "" {
				photo = app.store.WithPhotoVersion(p.PhotoURL)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, internal.DisplayName(p, premium), p.City, photo)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)
}
