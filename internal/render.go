package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	chatHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	mineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Align(lipgloss.Right)

	theirsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// RenderConversation formats a conversation view for the terminal,
// oldest message first.
func RenderConversation(view ConversationView, otherName string) string {
	var b strings.Builder

	presence := offlineStyle.Render("offline")
	if view.Online {
		presence = onlineStyle.Render("online")
	}
	b.WriteString(chatHeaderStyle.Render(fmt.Sprintf("%s | %s", otherName, presence)))
	b.WriteString("\n")

	if view.BlockedByMe {
		b.WriteString(blockedStyle.Render("You have blocked this user."))
		b.WriteString("\n")
	}
	if view.BlockedMe {
		b.WriteString(blockedStyle.Render("This user has blocked you. Sending is disabled."))
		b.WriteString("\n")
	}

	if len(view.Messages) == 0 {
		b.WriteString(metaStyle.Render("No messages yet. Say hello!"))
		b.WriteString("\n")
		return b.String()
	}

	for _, m := range view.Messages {
		line := m.Message
		if m.Timestamp != "" {
			line += " " + metaStyle.Render(m.Timestamp)
		}
		if m.SenderID == view.SelfID {
			if m.Seen {
				line += " " + metaStyle.Render("seen")
			}
			b.WriteString(mineStyle.Render("you: " + line))
		} else {
			b.WriteString(theirsStyle.Render(otherName + ": " + line))
		}
		b.WriteString("\n")
	}

	if n := view.UnreadCount(); n > 0 {
		b.WriteString(metaStyle.Render(fmt.Sprintf("%d unread", n)))
		b.WriteString("\n")
	}

	return b.String()
}
