package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Client is a thin REST client for the backend. Every request goes
// through do, which attaches the bearer token from the session store.
type Client struct {
	base  string
	http  *http.Client
	store *SessionStore
}

// NewClient creates a client for the given configuration
func NewClient(cfg *Config, store *SessionStore) *Client {
	return &Client{
		base:  cfg.BaseURL,
		http:  &http.Client{Timeout: cfg.HTTPTimeout},
		store: store,
	}
}

// token resolves the bearer token to attach. If the in-memory session
// is empty the durable record is consulted, which covers a fresh
// process whose cache has not been hydrated yet. An empty result means
// the request goes out unauthenticated; the server decides whether
// that is acceptable.
func (c *Client) token() string {
	sess := c.store.Get()
	if sess.Token == "" {
		sess = c.store.LoadFromStorage()
	}
	return sess.Token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func newAPIError(resp *http.Response, path string) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Path: path}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil {
			if body.Message != "" {
				apiErr.Message = body.Message
			} else {
				apiErr.Message = body.Error
			}
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}
	return apiErr
}

// --- Auth ---

// Login authenticates and returns the token and identity fields. The
// caller is responsible for storing them in the session store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{EmailID: email, CreatePassword: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new profile
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profiles/register", req, nil)
}

// ForgotPassword triggers the password reset flow
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, nil)
}

// VerifyOTP verifies a password-reset OTP
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-otp", body, nil)
}

// ResetPassword completes a password reset
func (c *Client) ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	body := map[string]string{
		"email":           email,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// SendRegistrationOTP sends a verification OTP to an email address
func (c *Client) SendRegistrationOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/register/send-otp", body, nil)
}

// VerifyRegistrationOTP verifies a registration email OTP
func (c *Client) VerifyRegistrationOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/register/verify-otp", body, nil)
}

// --- Profiles ---

// MyProfile fetches the caller's own profile
func (c *Client) MyProfile(ctx context.Context, id int64) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/profiles/myprofiles/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates a profile
func (c *Client) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/profiles/update/%d", id), p, nil)
}

// AllProfiles fetches every browsable profile
func (c *Client) AllProfiles(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/Allprofiles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadPhoto uploads a profile photo as multipart form data
func (c *Client) UploadPhoto(ctx context.Context, id int64, filename string, photo io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	path := fmt.Sprintf("/api/admin/photo/%d", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, path)
	}
	return nil
}

// --- Interests / friend requests ---

// ReceivedRequests lists interests received by a profile
func (c *Client) ReceivedRequests(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/received/%d", id))
}

// SentRequests lists interests sent by a profile
func (c *Client) SentRequests(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/sent/%d", id))
}

// AcceptedReceived lists accepted interests the profile received
func (c *Client) AcceptedReceived(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/accepted/received/%d", id))
}

// AcceptedSent lists accepted interests the profile sent
func (c *Client) AcceptedSent(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/accepted/sent/%d", id))
}

func (c *Client) requestList(ctx context.Context, path string) ([]FriendRequest, error) {
	var out []FriendRequest
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RejectedReceived lists interests the profile received and rejected
func (c *Client) RejectedReceived(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/rejected/received/%d", id))
}

// RejectedSent lists interests the profile sent that were rejected
func (c *Client) RejectedSent(ctx context.Context, id int64) ([]FriendRequest, error) {
	return c.requestList(ctx, fmt.Sprintf("/api/friends/rejected/sent/%d", id))
}

// SendRequest sends an interest from sender to receiver
func (c *Client) SendRequest(ctx context.Context, sender, receiver int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/friends/send/%d/%d", sender, receiver), nil, nil)
}

// RespondRequest accepts or rejects a received interest
func (c *Client) RespondRequest(ctx context.Context, requestID int64, accept bool) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/friends/respond/%d?accept=%t", requestID, accept), nil, nil)
}

// DeleteSentRequest cancels a previously sent interest
func (c *Client) DeleteSentRequest(ctx context.Context, requestID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/friends/sent/delete/%d", requestID), nil, nil)
}

// --- Chat ---

// Conversation fetches one page of the message history between self
// and other, newest pages first as the backend defines it.
func (c *Client) Conversation(ctx context.Context, self, other int64, page, size int) (*ConversationPage, error) {
	path := fmt.Sprintf("/api/chat/conversation/%d/%d?page=%d&size=%d", self, other, page, size)
	var out ConversationPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts one message from self to other
func (c *Client) SendMessage(ctx context.Context, self, other int64, text string) error {
	body := map[string]string{"message": text}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/send/%d/%d", self, other), body, nil)
}

// MarkSeen tells the backend that self has seen the conversation from
// other up to now.
func (c *Client) MarkSeen(ctx context.Context, other, self int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/seen/%d/%d", other, self), nil, nil)
}

// BlockStatus fetches the blocking state between self and other
func (c *Client) BlockStatus(ctx context.Context, self, other int64) (*BlockStatus, error) {
	var out BlockStatus
	path := fmt.Sprintf("/api/chat/block/status/%d/%d", self, other)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Block blocks the other party
func (c *Client) Block(ctx context.Context, self, other int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/block/%d/%d", self, other), nil, nil)
}

// Unblock lifts a block previously placed by self
func (c *Client) Unblock(ctx context.Context, self, other int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/unblock/%d/%d", self, other), nil, nil)
}

// Report reports the other party
func (c *Client) Report(ctx context.Context, self, other int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/chat/report/%d/%d", self, other), nil, nil)
}

// ClearChat deletes the conversation history between self and other
func (c *Client) ClearChat(ctx context.Context, self, other int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/chat/conversation/%d/%d", self, other), nil, nil)
}

// OnlineUsers fetches the ids of currently online users
func (c *Client) OnlineUsers(ctx context.Context) ([]int64, error) {
	var out []int64
	if err := c.do(ctx, http.MethodGet, "/api/chat/online", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Payments ---

// Plans lists the premium subscription plans
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var out []Plan
	if err := c.do(ctx, http.MethodGet, "/api/plans", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder creates a payment gateway order for a plan
func (c *Client) CreateOrder(ctx context.Context, profileID, planID int64) (*PaymentOrder, error) {
	body := map[string]int64{"profileId": profileID, "planId": planID}
	var out PaymentOrder
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment confirms a gateway payment against its order
func (c *Client) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	body := map[string]string{
		"orderId":   orderID,
		"paymentId": paymentID,
		"signature": signature,
	}
	return c.do(ctx, http.MethodPost, "/api/payment/verify", body, nil)
}

// LatestPayment fetches the most recent successful payment
func (c *Client) LatestPayment(ctx context.Context, profileID int64) (*Payment, error) {
	var out Payment
	path := fmt.Sprintf("/api/payment/successful/%d/latest", profileID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentHistory fetches all successful payments for a profile
func (c *Client) PaymentHistory(ctx context.Context, profileID int64) ([]Payment, error) {
	var out []Payment
	path := fmt.Sprintf("/api/payment/successful/%d", profileID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Notifications ---

// Notifications fetches the notification feed for a user. Entries
// missing a read flag decode as unread.
func (c *Client) Notifications(ctx context.Context, userID int64) ([]Notification, error) {
	var out []Notification
	path := fmt.Sprintf("/api/notifications/GetAll?userId=%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/read/%d", id), nil, nil)
}

// MarkAllNotificationsRead marks the whole feed as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/notifications/mark-all-read?userId=%d", userID), nil, nil)
}
