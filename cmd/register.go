package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
	"gopkg.in/yaml.v3"
)

var (
	registerFile  string
	registerOTP   string
	sendOTPOnly   bool
	registerEmail string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new profile",
	Long: `Create a new profile from a YAML file.

The file carries the full registration payload, for example:

  firstName: Asha
  lastName: Rao
  emailId: asha@example.com
  createPassword: "secret"
  city: Pune

Email verification is a two-step flow: request an OTP with --send-otp,
then register with --otp once it arrives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if sendOTPOnly {
			if registerEmail == "" {
				return fmt.Errorf("--email is required with --send-otp")
			}
			if err := app.client.SendRegistrationOTP(cmd.Context(), registerEmail); err != nil {
				return fmt.Errorf("failed to send OTP: %w", err)
			}
			fmt.Printf("Verification code sent to %s\n", registerEmail)
			return nil
		}

		if registerFile == "" {
			return fmt.Errorf("--file is required")
		}
		data, err := os.ReadFile(registerFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", registerFile, err)
		}
		var req internal.RegisterRequest
		if err := yaml.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("failed to parse %s: %w", registerFile, err)
		}
		if req.EmailID == "" || req.CreatePassword == "" {
			return fmt.Errorf("emailId and createPassword are required")
		}

		if registerOTP != "" {
			if err := app.client.VerifyRegistrationOTP(cmd.Context(), req.EmailID, registerOTP); err != nil {
				return fmt.Errorf("OTP verification failed: %w", err)
			}
		}

		if err := app.client.Register(cmd.Context(), req); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Profile created for %s. Run: vivah login\n", req.EmailID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerFile, "file", "", "YAML file with the registration payload")
	registerCmd.Flags().StringVar(&registerOTP, "otp", "", "Email verification code")
	registerCmd.Flags().BoolVar(&sendOTPOnly, "send-otp", false, "Only send the verification code")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address for --send-otp")
	rootCmd.AddCommand(registerCmd)
}
