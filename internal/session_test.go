package internal

import (
	"testing"
	"time"

	"github.com/vivahlabs/vivah-cli/testutil"
)

func TestSessionStore_SetAndGet(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)

	sess := Session{Token: "abc", UserID: 42, Email: "a@b.c"}
	store.Set(sess)

	got := store.Get()
	if got != sess {
		t.Errorf("Get() = %+v, want %+v", got, sess)
	}
}

func TestSessionStore_SetReplacesWholesale(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)
	store.Set(Session{Token: "abc", UserID: 42, Email: "a@b.c", PhotoVersion: 7})

	// A partial set must not merge fields from the previous session.
	store.Set(Session{Token: "def", UserID: 42})

	got := store.Get()
	if got.Email != "" {
		t.Errorf("Email = %q, want empty after wholesale replace", got.Email)
	}
	if got.PhotoVersion != 0 {
		t.Errorf("PhotoVersion = %d, want 0 after wholesale replace", got.PhotoVersion)
	}
}

func TestSessionStore_LoadFromStorage(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	testutil.SeedSession(t, db, `{"token":"T","userId":9,"email":"x@y.z","photoVersion":3}`)

	store := NewSessionStore(db)
	got := store.LoadFromStorage()

	want := Session{Token: "T", UserID: 9, Email: "x@y.z", PhotoVersion: 3}
	if got != want {
		t.Errorf("LoadFromStorage() = %+v, want %+v", got, want)
	}
	if store.Get() != want {
		t.Errorf("Get() after load = %+v, want %+v", store.Get(), want)
	}
}

func TestSessionStore_LoadFromStorage_Empty(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)
	got := store.LoadFromStorage()

	if got != (Session{}) {
		t.Errorf("LoadFromStorage() with no record = %+v, want empty session", got)
	}
}

func TestSessionStore_LoadFromStorage_CorruptRecordIgnored(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)
	store.Set(Session{Token: "keep", UserID: 1})

	testutil.SeedSession(t, db, `{not valid json`)

	got := store.LoadFromStorage()
	if got.Token != "keep" {
		t.Errorf("corrupt record replaced in-memory session: got %+v", got)
	}
}

func TestSessionStore_PersistenceFailureSwallowed(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	db.Close() // every write from here on fails

	store := NewSessionStore(db)
	store.Set(Session{Token: "abc", UserID: 42})

	got := store.Get()
	if got.Token != "abc" || got.UserID != 42 {
		t.Errorf("in-memory session not updated despite storage failure: %+v", got)
	}
}

func TestSessionStore_NilDatabase(t *testing.T) {
	store := NewSessionStore(nil)

	store.Set(Session{Token: "abc", UserID: 1})
	if store.Get().Token != "abc" {
		t.Error("Set() should work without a database")
	}

	store.Clear()
	if store.Get() != (Session{}) {
		t.Error("Clear() should work without a database")
	}

	if got := store.LoadFromStorage(); got != (Session{}) {
		t.Errorf("LoadFromStorage() without database = %+v, want empty", got)
	}
}

func TestSessionStore_Clear(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)
	store.Set(Session{Token: "abc", UserID: 42, Email: "a@b.c"})
	store.Clear()

	if store.Get() != (Session{}) {
		t.Errorf("Get() after Clear() = %+v, want empty", store.Get())
	}

	// The durable record must be gone too.
	fresh := NewSessionStore(db)
	if got := fresh.LoadFromStorage(); got != (Session{}) {
		t.Errorf("durable record survived Clear(): %+v", got)
	}
}

func TestSessionStore_RestartScenario(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)

	// Fresh process, nothing durable yet.
	if got := store.LoadFromStorage(); got != (Session{}) {
		t.Fatalf("initial LoadFromStorage() = %+v, want empty", got)
	}

	store.Set(Session{Token: "abc", UserID: 42})
	got := store.Get()
	if got.Token != "abc" || got.UserID != 42 || got.Email != "" || got.PhotoVersion != 0 {
		t.Fatalf("Get() = %+v, want token/userId only", got)
	}

	// Simulate a restart: a new store over the same database.
	restarted := NewSessionStore(db)
	if restarted.Get() != (Session{}) {
		t.Fatal("fresh store should start empty")
	}
	hydrated := restarted.LoadFromStorage()
	if hydrated.Token != "abc" || hydrated.UserID != 42 {
		t.Errorf("LoadFromStorage() after restart = %+v, want restored session", hydrated)
	}
}

func TestSessionStore_SetPhotoVersion(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	store := NewSessionStore(db)
	store.Set(Session{Token: "abc", UserID: 42})

	if got := store.SetPhotoVersion(7); got != 7 {
		t.Errorf("SetPhotoVersion(7) = %d, want 7", got)
	}
	if store.Get().PhotoVersion != 7 {
		t.Errorf("PhotoVersion = %d, want 7", store.Get().PhotoVersion)
	}

	// The version persists alongside the rest of the session.
	fresh := NewSessionStore(db)
	if got := fresh.LoadFromStorage(); got.PhotoVersion != 7 {
		t.Errorf("persisted PhotoVersion = %d, want 7", got.PhotoVersion)
	}
}

func TestSessionStore_SetPhotoVersion_DefaultsToNow(t *testing.T) {
	store := NewSessionStore(nil)

	before := time.Now().UnixMilli()
	got := store.SetPhotoVersion(0)
	after := time.Now().UnixMilli()

	if got < before || got > after {
		t.Errorf("SetPhotoVersion(0) = %d, want a current unix-milli timestamp", got)
	}
}

func TestSessionStore_WithPhotoVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int64
		url     string
		want    string
	}{
		{"no version", 0, "http://x/img.png", "http://x/img.png"},
		{"empty url", 7, "", ""},
		{"plain url", 7, "http://x/img.png", "http://x/img.png?pv=7"},
		{"existing query", 7, "http://x/img.png?a=1", "http://x/img.png?a=1&pv=7"},
		{"already applied", 7, "http://x/img.png?pv=7", "http://x/img.png?pv=7"},
		{"already applied mid-query", 7, "http://x/img.png?pv=7&a=1", "http://x/img.png?pv=7&a=1"},
		{"different version appended", 8, "http://x/img.png?pv=7", "http://x/img.png?pv=7&pv=8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSessionStore(nil)
			if tt.version != 0 {
				store.SetPhotoVersion(tt.version)
			}
			if got := store.WithPhotoVersion(tt.url); got != tt.want {
				t.Errorf("WithPhotoVersion(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSessionStore_WithPhotoVersion_Idempotent(t *testing.T) {
	store := NewSessionStore(nil)
	store.SetPhotoVersion(7)

	once := store.WithPhotoVersion("http://x/img.png")
	twice := store.WithPhotoVersion(once)
	if once != "http://x/img.png?pv=7" {
		t.Errorf("first application = %q, want http://x/img.png?pv=7", once)
	}
	if twice != once {
		t.Errorf("second application = %q, want unchanged %q", twice, once)
	}
}

func TestSession_Authenticated(t *testing.T) {
	tests := []struct {
		name string
		sess Session
		want bool
	}{
		{"empty", Session{}, false},
		{"token only", Session{Token: "t"}, false},
		{"user only", Session{UserID: 1}, false},
		{"token and user", Session{Token: "t", UserID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sess.Authenticated(); got != tt.want {
				t.Errorf("Authenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}
