package export

import (
	"fmt"
	"io"

	"github.com/vivahlabs/vivah-cli/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	other := t.OtherName
	if other == "" {
		other = fmt.Sprintf("user %d", t.OtherID)
	}

	_, _ = fmt.Fprintf(w, "# Conversation with %s\n\n", other)
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", t.ExportedAt)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range t.Messages {
		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.From, timestamp, msg.Text)

		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
