package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
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

		fmt.Printf("Email:   %s\n", sess.Email)
		fmt.Printf("User ID: %d\n", sess.UserID)
		if sess.PhotoVersion != 0 {
			fmt.Printf("Photo version: %d\n", sess.PhotoVersion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
