package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
	"gopkg.in/yaml.v3"
)

var profileUpdateFile string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a profile (your own by default)",
	Args:  cobra.MaximumNArgs(1),
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

		id := sess.UserID
		if len(args) == 1 {
			id, err = strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid profile id %q", args[0])
			}
		}

		p, err := app.client.MyProfile(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		fmt.Printf("%s %s (id %d)\n", p.FirstName, p.LastName, p.ID)
		if p.City != "" {
			fmt.Printf("City:       %s\n", p.City)
		}
		if p.Religion != "" {
			fmt.Printf("Religion:   %s\n", p.Religion)
		}
		if p.Education != "" {
			fmt.Printf("Education:  %s\n", p.Education)
		}
		if p.Occupation != "" {
			fmt.Printf("Occupation: %s\n", p.Occupation)
		}
		if p.About != "" {
			fmt.Printf("About:      %s\n", p.About)
		}
		if p.PhotoURL != "" {
			fmt.Printf("Photo:      %s\n", app.store.WithPhotoVersion(p.PhotoURL))
		}
		if p.Premium {
			fmt.Printf("Premium until %s\n", p.PremiumEnd)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile from a YAML file",
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

		if profileUpdateFile == "" {
			return fmt.Errorf("--file is required")
		}
		data, err := os.ReadFile(profileUpdateFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", profileUpdateFile, err)
		}
		var p internal.Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse %s: %w", profileUpdateFile, err)
		}

		if err := app.client.UpdateProfile(cmd.Context(), sess.UserID, p); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		fmt.Println("Profile updated.")
		return nil
	},
}

var profilePhotoCmd = &cobra.Command{
	Use:   "photo <path>",
	Short: "Upload a profile photo",
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

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer f.Close()

		if err := app.client.UploadPhoto(cmd.Context(), sess.UserID, filepath.Base(args[0]), f); err != nil {
			return fmt.Errorf("failed to upload photo: %w", err)
		}

		// Bump the cache-bust version so freshly fetched photo URLs
		// bypass any stale CDN or client cache.
		v := app.store.SetPhotoVersion(0)
		fmt.Printf("Photo uploaded (version %d).\n", v)
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileUpdateFile, "file", "", "YAML file with profile fields")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePhotoCmd)
	rootCmd.AddCommand(profileCmd)
}
