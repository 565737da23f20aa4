package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SessionKey is the fixed namespace key the session record is stored under
const SessionKey = "vivah_session"

// Session represents the authenticated identity of the device user.
// Zero values mean "absent": an unauthenticated session is the zero
// Session, and a live one has at minimum Token and UserID.
type Session struct {
	Token        string `json:"token"`
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	PhotoVersion int64  `json:"photoVersion"`
}

// Authenticated reports whether the session carries a usable identity
func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != 0
}

// SessionStore is the single source of truth for who is logged in. The
// in-memory session is authoritative; the app database is a best-effort
// durable copy used to rehydrate after a restart. Persistence failures
// never propagate to callers.
type SessionStore struct {
	mu  sync.RWMutex
	cur Session
	db  *sql.DB
}

// NewSessionStore creates a store backed by the given app database
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Set replaces the in-memory session wholesale and persists it.
// Fields absent from sess are simply their zero values; nothing is
// merged from the previous session.
func (s *SessionStore) Set(sess Session) {
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	s.persist(sess)
}

// Get returns the current in-memory session. No I/O, never fails.
func (s *SessionStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// LoadFromStorage reads the durable session record and, only if it
// parses, replaces the in-memory session. An empty, unavailable, or
// corrupt record leaves memory unchanged. Returns the resulting
// session either way.
func (s *SessionStore) LoadFromStorage() Session {
	if s.db != nil {
		raw, ok, err := KVGet(s.db, SessionKey)
		if err != nil {
			LogDebug("session load: %v", err)
		} else if ok {
			var parsed Session
			if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
				LogWarn("session load: corrupt record ignored: %v", err)
			} else {
				s.mu.Lock()
				s.cur = parsed
				s.mu.Unlock()
			}
		}
	}
	return s.Get()
}

// Clear resets the session to empty and deletes the durable record.
// Deletion is best-effort.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.cur = Session{}
	s.mu.Unlock()
	if s.db != nil {
		bestEffort("session clear", func() error {
			return KVDelete(s.db, SessionKey)
		})
	}
}

// SetPhotoVersion advances the photo cache-bust version. A zero
// argument means "use the current wall clock in milliseconds". The new
// session is persisted like any other mutation. Returns the version.
func (s *SessionStore) SetPhotoVersion(version int64) int64 {
	if version == 0 {
		version = time.Now().UnixMilli()
	}
	s.mu.Lock()
	s.cur.PhotoVersion = version
	sess := s.cur
	s.mu.Unlock()
	s.persist(sess)
	return version
}

// WithPhotoVersion appends the current photo version to a resource URL
// as a pv= query parameter, joining with & when the URL already has a
// query string. The URL is returned unchanged when it is empty, when
// no version is set, or when the same pv parameter is already present.
func (s *SessionStore) WithPhotoVersion(url string) string {
	if url == "" {
		return url
	}
	v := s.Get().PhotoVersion
	if v == 0 {
		return url
	}
	param := fmt.Sprintf("pv=%d", v)
	if strings.HasSuffix(url, "?"+param) || strings.HasSuffix(url, "&"+param) ||
		strings.Contains(url, "?"+param+"&") || strings.Contains(url, "&"+param+"&") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + param
}

func (s *SessionStore) persist(sess Session) {
	if s.db == nil {
		return
	}
	bestEffort("session persist", func() error {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		return KVSet(s.db, SessionKey, string(data))
	})
}
