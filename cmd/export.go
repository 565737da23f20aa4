package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
	"github.com/vivahlabs/vivah-cli/internal/export"
)

var (
	exportFormat string
	exportOutput string
	exportSize   int
)

var exportCmd = &cobra.Command{
	Use:   "export <profileId>",
	Short: "Export a conversation transcript",
	Long: `Fetch the conversation with a contact and write it out as a
transcript. Supported formats: json, jsonl, yaml, md.`,
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

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		page, err := app.client.Conversation(cmd.Context(), sess.UserID, otherID, 0, exportSize)
		if err != nil {
			return fmt.Errorf("failed to fetch conversation: %w", err)
		}

		view := internal.ConversationView{
			SelfID:   sess.UserID,
			OtherID:  otherID,
			Messages: page.Content,
		}

		selfName := sess.Email
		otherName := fmt.Sprintf("user %d", otherID)
		if p, err := app.client.MyProfile(cmd.Context(), otherID); err == nil {
			otherName = internal.DisplayName(*p, true)
		}

		transcript := internal.NewTranscript(view, selfName, otherName)

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(transcript, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput != "" {
			fmt.Printf("Wrote %s transcript to %s\n", exporter.Extension(), exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().IntVar(&exportSize, "size", 200, "Maximum number of messages to fetch")
	rootCmd.AddCommand(exportCmd)
}
