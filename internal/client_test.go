package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/vivahlabs/vivah-cli/testutil"
)

func newTestClient(t *testing.T, api *testutil.MockAPI, store *SessionStore) *Client {
	t.Helper()
	cfg := &Config{BaseURL: api.URL(), HTTPTimeout: 5 * time.Second}
	return NewClient(cfg, store)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.HandleJSON("/api/chat/online", []int64{})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	if _, err := client.OnlineUsers(context.Background()); err != nil {
		t.Fatalf("OnlineUsers() error = %v", err)
	}

	if got := api.LastAuth(); got != "Bearer T" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer T")
	}
}

func TestClient_HydratesTokenFromStorage(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.HandleJSON("/api/chat/online", []int64{})

	// In-memory session is empty; only the durable record has a token.
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	testutil.SeedSession(t, db, `{"token":"T","userId":7}`)

	store := NewSessionStore(db)
	client := newTestClient(t, api, store)

	if _, err := client.OnlineUsers(context.Background()); err != nil {
		t.Fatalf("OnlineUsers() error = %v", err)
	}

	if got := api.LastAuth(); got != "Bearer T" {
		t.Errorf("Authorization = %q, want hydrated bearer %q", got, "Bearer T")
	}
}

func TestClient_NoTokenProceedsUnauthenticated(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.HandleJSON("/api/chat/online", []int64{})

	store := NewSessionStore(nil)
	client := newTestClient(t, api, store)

	if _, err := client.OnlineUsers(context.Background()); err != nil {
		t.Fatalf("OnlineUsers() error = %v", err)
	}

	if got := api.LastAuth(); got != "" {
		t.Errorf("Authorization = %q, want empty for unauthenticated request", got)
	}
}

func TestClient_Login(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		testutil.JSONUnmarshal(t, body, &req)
		if req["emailId"] != "a@b.c" || req["createPassword"] != "secret" {
			t.Errorf("login body = %v, want emailId and createPassword fields", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "tok", ID: 42, Email: "a@b.c"})
	})

	client := newTestClient(t, api, NewSessionStore(nil))

	res, err := client.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "tok" || res.ID != 42 {
		t.Errorf("Login() = %+v, want token and id", res)
	}
}

func TestClient_APIError(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	})

	client := newTestClient(t, api, NewSessionStore(nil))

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("Login() with 401 should fail")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "bad credentials" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}
	if !apiErr.IsAuthError() {
		t.Error("IsAuthError() = false, want true for 401")
	}
}

func TestClient_Conversation(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/chat/conversation/1/2", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "0" || r.URL.Query().Get("size") != "50" {
			t.Errorf("query = %s, want page=0&size=50", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.ConversationJSON))
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	page, err := client.Conversation(context.Background(), 1, 2, 0, 50)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if len(page.Content) != 2 {
		t.Fatalf("len(Content) = %d, want 2", len(page.Content))
	}
	if page.Content[1].Seen {
		t.Error("inbound message should decode as unseen")
	}
}

func TestClient_Notifications_MissingReadDecodesFalse(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/notifications/GetAll", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.NotificationsJSON))
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	items, err := client.Notifications(context.Background(), 1)
	if err != nil {
		t.Fatalf("Notifications() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if !items[0].Read {
		t.Error("first notification should be read")
	}
	if items[1].Read {
		t.Error("notification without read flag should default to unread")
	}
}

func TestClient_RespondRequest(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/friends/respond/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/friends/respond/9" {
			t.Errorf("path = %s, want /api/friends/respond/9", r.URL.Path)
		}
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	if err := client.RespondRequest(context.Background(), 9, true); err != nil {
		t.Fatalf("RespondRequest(accept) error = %v", err)
	}
	if err := client.RespondRequest(context.Background(), 9, false); err != nil {
		t.Fatalf("RespondRequest(reject) error = %v", err)
	}
}

func TestClient_RespondRequest_AcceptQuery(t *testing.T) {
	api := testutil.NewMockAPI(t)
	var accepts []string
	api.Handle("/api/friends/respond/", func(w http.ResponseWriter, r *http.Request) {
		accepts = append(accepts, r.URL.Query().Get("accept"))
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	if err := client.RespondRequest(context.Background(), 9, true); err != nil {
		t.Fatalf("RespondRequest(accept) error = %v", err)
	}
	if err := client.RespondRequest(context.Background(), 9, false); err != nil {
		t.Fatalf("RespondRequest(reject) error = %v", err)
	}

	if len(accepts) != 2 || accepts[0] != "true" || accepts[1] != "false" {
		t.Errorf("accept query values = %v, want [true false]", accepts)
	}
}

func TestClient_RejectedLists(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.HandleJSON("/api/friends/rejected/received/1", []FriendRequest{
		{RequestID: 5, SenderID: 2, ReceiverID: 1, Status: "REJECTED"},
	})
	api.HandleJSON("/api/friends/rejected/sent/1", []FriendRequest{})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	recv, err := client.RejectedReceived(context.Background(), 1)
	if err != nil {
		t.Fatalf("RejectedReceived() error = %v", err)
	}
	if len(recv) != 1 || recv[0].RequestID != 5 {
		t.Errorf("RejectedReceived() = %+v, want the rejected interest", recv)
	}

	sent, err := client.RejectedSent(context.Background(), 1)
	if err != nil {
		t.Fatalf("RejectedSent() error = %v", err)
	}
	if len(sent) != 0 {
		t.Errorf("RejectedSent() = %+v, want empty", sent)
	}
}

func TestClient_UploadPhoto(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/admin/photo/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q, want multipart", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()
		if header.Filename != "me.jpg" {
			t.Errorf("filename = %q, want me.jpg", header.Filename)
		}
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 42})
	client := newTestClient(t, api, store)

	err := client.UploadPhoto(context.Background(), 42, "me.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("UploadPhoto() error = %v", err)
	}
}

func TestClient_MarkSeen_PathOrder(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.Handle("/api/chat/seen/", func(w http.ResponseWriter, r *http.Request) {
		// The pair is (otherParty, self).
		if r.URL.Path != "/api/chat/seen/2/1" {
			t.Errorf("path = %s, want /api/chat/seen/2/1", r.URL.Path)
		}
	})

	store := NewSessionStore(nil)
	store.Set(Session{Token: "T", UserID: 1})
	client := newTestClient(t, api, store)

	if err := client.MarkSeen(context.Background(), 2, 1); err != nil {
		t.Fatalf("MarkSeen() error = %v", err)
	}
}
