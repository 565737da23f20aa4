package cmd

import (
	"testing"

	"github.com/vivahlabs/vivah-cli/internal"
)

func TestContactName(t *testing.T) {
	tests := []struct {
		name string
		req  internal.FriendRequest
		self int64
		want string
	}{
		{
			name: "self is sender, receiver name present",
			req:  internal.FriendRequest{SenderID: 1, ReceiverID: 2, ReceiverName: "Asha"},
			self: 1,
			want: "Asha",
		},
		{
			name: "self is receiver, sender name present",
			req:  internal.FriendRequest{SenderID: 2, ReceiverID: 1, SenderName: "Rohan"},
			self: 1,
			want: "Rohan",
		},
		{
			name: "self is sender, receiver name missing",
			req:  internal.FriendRequest{SenderID: 1, ReceiverID: 2},
			self: 1,
			want: "User",
		},
		{
			name: "self is receiver, sender name missing",
			req:  internal.FriendRequest{SenderID: 2, ReceiverID: 1},
			self: 1,
			want: "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contactName(tt.req, tt.self); got != tt.want {
				t.Errorf("contactName() = %q, want %q", got, tt.want)
			}
		})
	}
}
