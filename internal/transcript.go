package internal

import "time"

// Transcript is an export-friendly rendering of a conversation view,
// with party ids resolved to display names.
type Transcript struct {
	SelfID     int64               `json:"self_id" yaml:"self_id"`
	OtherID    int64               `json:"other_id" yaml:"other_id"`
	SelfName   string              `json:"self_name,omitempty" yaml:"self_name,omitempty"`
	OtherName  string              `json:"other_name,omitempty" yaml:"other_name,omitempty"`
	ExportedAt string              `json:"exported_at" yaml:"exported_at"`
	Messages   []TranscriptMessage `json:"messages" yaml:"messages"`
}

// TranscriptMessage is one message attributed by display name
type TranscriptMessage struct {
	From      string `json:"from" yaml:"from"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Seen      bool   `json:"seen" yaml:"seen"`
}

// NewTranscript builds a transcript from a conversation view
func NewTranscript(view ConversationView, selfName, otherName string) *Transcript {
	t := &Transcript{
		SelfID:     view.SelfID,
		OtherID:    view.OtherID,
		SelfName:   selfName,
		OtherName:  otherName,
		ExportedAt: time.Now().Format(time.RFC3339),
		Messages:   make([]TranscriptMessage, 0, len(view.Messages)),
	}
	for _, m := range view.Messages {
		from := otherName
		if m.SenderID == view.SelfID {
			from = selfName
		}
		t.Messages = append(t.Messages, TranscriptMessage{
			From:      from,
			Text:      m.Message,
			Timestamp: m.Timestamp,
			Seen:      m.Seen,
		})
	}
	return t
}
