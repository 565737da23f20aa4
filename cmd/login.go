package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the session",
	Long: `Authenticate against the backend and store the resulting session
in the local data directory. Subsequent commands reuse it until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email := strings.TrimSpace(loginEmail)
		if email == "" {
			email = prompt("Email: ")
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}
		password := loginPassword
		if password == "" {
			password = prompt("Password: ")
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		res, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		app.store.Set(internal.Session{
			Token:  res.Token,
			UserID: res.ID,
			Email:  res.Email,
		})

		fmt.Printf("Logged in as %s (id %d)\n", res.Email, res.ID)
		return nil
	},
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}
