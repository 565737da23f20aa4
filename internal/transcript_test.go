package internal

import "testing"

func TestNewTranscript(t *testing.T) {
	view := ConversationView{
		SelfID:  1,
		OtherID: 2,
		Messages: []ChatMessage{
			{SenderID: 1, ReceiverID: 2, Message: "Hello!", Timestamp: "t1", Seen: true},
			{SenderID: 2, ReceiverID: 1, Message: "Hi there", Timestamp: "t2", Seen: false},
		},
	}

	tr := NewTranscript(view, "Me", "Asha")

	if tr.SelfID != 1 || tr.OtherID != 2 {
		t.Errorf("ids = (%d, %d), want (1, 2)", tr.SelfID, tr.OtherID)
	}
	if tr.ExportedAt == "" {
		t.Error("ExportedAt not set")
	}
	if len(tr.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(tr.Messages))
	}
	if tr.Messages[0].From != "Me" {
		t.Errorf("first message attributed to %q, want Me", tr.Messages[0].From)
	}
	if tr.Messages[1].From != "Asha" {
		t.Errorf("second message attributed to %q, want Asha", tr.Messages[1].From)
	}
	if !tr.Messages[0].Seen || tr.Messages[1].Seen {
		t.Error("seen flags not carried into transcript")
	}
}

func TestNewTranscript_EmptyConversation(t *testing.T) {
	tr := NewTranscript(ConversationView{SelfID: 1, OtherID: 2}, "Me", "Asha")
	if len(tr.Messages) != 0 {
		t.Errorf("len(Messages) = %d, want 0", len(tr.Messages))
	}
}
