package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	forgotEmail    string
	forgotOTP      string
	forgotPassword string
)

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Reset a forgotten password",
	Long: `Reset a forgotten password in two steps.

Request a reset code first:

  vivah forgot-password --email you@example.com

Then, once the code arrives, set the new password:

  vivah forgot-password --email you@example.com --otp 123456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		email := strings.TrimSpace(forgotEmail)
		if email == "" {
			email = prompt("Email: ")
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}

		if forgotOTP == "" {
			if err := app.client.ForgotPassword(cmd.Context(), email); err != nil {
				return fmt.Errorf("failed to request reset code: %w", err)
			}
			fmt.Printf("Reset code sent to %s. Re-run with --otp once it arrives.\n", email)
			return nil
		}

		if err := app.client.VerifyOTP(cmd.Context(), email, forgotOTP); err != nil {
			return fmt.Errorf("code verification failed: %w", err)
		}

		password := forgotPassword
		if password == "" {
			password = prompt("New password: ")
			if password == "" {
				return fmt.Errorf("new password is required")
			}
			if confirm := prompt("Confirm password: "); confirm != password {
				return fmt.Errorf("passwords do not match")
			}
		}

		if err := app.client.ResetPassword(cmd.Context(), email, password, password); err != nil {
			return fmt.Errorf("password reset failed: %w", err)
		}
		fmt.Println("Password updated. Run: vivah login")
		return nil
	},
}

func init() {
	forgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email")
	forgotPasswordCmd.Flags().StringVar(&forgotOTP, "otp", "", "Reset code from the email")
	forgotPasswordCmd.Flags().StringVar(&forgotPassword, "password", "", "New password (prompted if omitted)")
	rootCmd.AddCommand(forgotPasswordCmd)
}
