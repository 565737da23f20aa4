package internal

import (
	"fmt"
	"time"
)

// Wire types for the backend REST API. Field names follow the JSON the
// server actually produces.

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	EmailID        string `json:"emailId"`
	CreatePassword string `json:"createPassword"`
}

// LoginResponse is the body returned by a successful login
type LoginResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Profile represents a member profile as the backend returns it. The
// yaml tags let the same struct serve as the profile update file format.
type Profile struct {
	ID          int64  `json:"id" yaml:"id,omitempty"`
	FirstName   string `json:"firstName" yaml:"firstName"`
	LastName    string `json:"lastName" yaml:"lastName"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Gender      string `json:"gender,omitempty" yaml:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	City        string `json:"city,omitempty" yaml:"city,omitempty"`
	Religion    string `json:"religion,omitempty" yaml:"religion,omitempty"`
	Community   string `json:"community,omitempty" yaml:"community,omitempty"`
	Education   string `json:"education,omitempty" yaml:"education,omitempty"`
	Occupation  string `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	About       string `json:"about,omitempty" yaml:"about,omitempty"`
	PhotoURL    string `json:"updatePhoto,omitempty" yaml:"updatePhoto,omitempty"`
	Premium     bool   `json:"premium,omitempty" yaml:"premium,omitempty"`
	PremiumEnd  string `json:"premiumEnd,omitempty" yaml:"premiumEnd,omitempty"`
}

// PremiumActive reports whether the profile's premium plan is active:
// the flag must be set and the end date, when present, must not have
// passed. An unparseable end date counts as not expired.
func PremiumActive(p *Profile) bool {
	if p == nil || !p.Premium {
		return false
	}
	if p.PremiumEnd == "" {
		return true
	}
	end, err := time.Parse(time.RFC3339, p.PremiumEnd)
	if err != nil {
		end, err = time.Parse("2006-01-02", p.PremiumEnd)
		if err != nil {
			return true
		}
	}
	return end.After(time.Now())
}

// RegisterRequest is the body of POST /api/profiles/register. The
// backend hashes the password; the client sends it as entered.
type RegisterRequest struct {
	FirstName      string `json:"firstName" yaml:"firstName"`
	LastName       string `json:"lastName" yaml:"lastName"`
	EmailID        string `json:"emailId" yaml:"emailId"`
	CreatePassword string `json:"createPassword" yaml:"createPassword"`
	Phone          string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Gender         string `json:"gender,omitempty" yaml:"gender,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	City           string `json:"city,omitempty" yaml:"city,omitempty"`
	Religion       string `json:"religion,omitempty" yaml:"religion,omitempty"`
	Community      string `json:"community,omitempty" yaml:"community,omitempty"`
	Education      string `json:"education,omitempty" yaml:"education,omitempty"`
	Occupation     string `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	About          string `json:"about,omitempty" yaml:"about,omitempty"`
}

// FriendRequest represents an interest sent between two profiles
type FriendRequest struct {
	RequestID    int64  `json:"requestId"`
	SenderID     int64  `json:"senderId"`
	ReceiverID   int64  `json:"receiverId"`
	SenderName   string `json:"senderName,omitempty"`
	ReceiverName string `json:"receiverName,omitempty"`
	Status       string `json:"status,omitempty"`
}

// OtherParty returns the id of the contact on the far side of a
// request relative to self.
func (r FriendRequest) OtherParty(self int64) int64 {
	if r.SenderID == self {
		return r.ReceiverID
	}
	return r.SenderID
}

// ChatMessage represents one message in a two-party conversation
type ChatMessage struct {
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Seen       bool   `json:"seen"`
}

// key identifies a message for seen-state carry-forward across polls
func (m ChatMessage) key() string {
	return fmt.Sprintf("%d\x00%d\x00%s\x00%s", m.SenderID, m.ReceiverID, m.Timestamp, m.Message)
}

// ConversationPage is the paginated body of GET /api/chat/conversation
type ConversationPage struct {
	Content       []ChatMessage `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"totalElements,omitempty"`
}

// BlockStatus describes blocking between self and the other party.
// BlockedMe means the other party has blocked the current user, which
// is what gates sending.
type BlockStatus struct {
	BlockedByMe bool `json:"blockedByMe"`
	BlockedMe   bool `json:"blockedMe"`
}

// Notification represents one entry from the notifications feed
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Plan represents a premium subscription plan
type Plan struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	DurationDays int    `json:"durationDays,omitempty"`
	Description  string `json:"description,omitempty"`
}

// PaymentOrder is the gateway order payload returned by create-order
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Payment represents a completed payment record
type Payment struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profileId"`
	Amount    int64  `json:"amount"`
	PlanName  string `json:"planName,omitempty"`
	PaidAt    string `json:"paidAt,omitempty"`
}
