package internal

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultConversationPageSize is how many messages one poll fetches
const DefaultConversationPageSize = 50

// ConversationView is the client's reconciled view of a two-party
// message thread. It is rebuilt wholesale on every poll; the remote
// response is authoritative for everything except the Seen flag, which
// only ever moves from false to true.
type ConversationView struct {
	SelfID       int64
	OtherID      int64
	Messages     []ChatMessage
	BlockedByMe  bool
	BlockedMe    bool
	Online       bool
	LastSyncedAt time.Time
}

// UnreadCount returns how many inbound messages are still unseen
func (v ConversationView) UnreadCount() int {
	n := 0
	for _, m := range v.Messages {
		if m.ReceiverID == v.SelfID && !m.Seen {
			n++
		}
	}
	return n
}

// ConversationSync keeps an eventually-consistent local view of one
// conversation by polling on a fixed interval. A cycle issues three
// concurrent fetches (history, block status, online set); whatever
// fails is logged and degraded, and the cycle commits regardless so
// the caller always has something to render. Each cycle carries a
// sequence number so a slow response from an old cycle cannot
// overwrite the result of a newer one.
type ConversationSync struct {
	client   *Client
	selfID   int64
	otherID  int64
	interval time.Duration
	pageSize int

	// OnUpdate, if set before Start, is invoked after every committed
	// cycle with a snapshot of the view.
	OnUpdate func(ConversationView)

	mu        sync.Mutex
	view      ConversationView
	draft     string
	busy      bool // guards block/unblock/report/clear
	nextSeq   uint64
	committed uint64
	closed    bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewConversationSync creates a sync engine for the (self, other) pair
func NewConversationSync(client *Client, self, other int64, interval time.Duration) *ConversationSync {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &ConversationSync{
		client:   client,
		selfID:   self,
		otherID:  other,
		interval: interval,
		pageSize: DefaultConversationPageSize,
		view:     ConversationView{SelfID: self, OtherID: other},
	}
}

// Start runs an immediate sync cycle and then re-polls on the
// configured interval until Close is called or ctx is cancelled.
func (s *ConversationSync) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.runCycle(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runCycle(ctx)
			}
		}
	}()
}

// Close stops polling. In-flight requests may still resolve but their
// results are discarded.
func (s *ConversationSync) Close() {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// View returns a snapshot of the current view
func (s *ConversationSync) View() ConversationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Draft returns the current compose draft
func (s *ConversationSync) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the compose draft
func (s *ConversationSync) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Send validates and posts the draft text. Rejections happen locally
// with no network call: empty text, a missing counterpart, or the
// other party having blocked self. On success the draft is cleared and
// the conversation is re-fetched immediately rather than appending the
// message optimistically. On failure the draft survives for a retry.
func (s *ConversationSync) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if s.otherID == 0 {
		return &ValidationError{Field: "recipient", Reason: "no conversation partner"}
	}
	s.mu.Lock()
	blocked := s.view.BlockedMe
	s.draft = text
	s.mu.Unlock()
	if blocked {
		return ErrBlocked
	}

	if err := s.client.SendMessage(ctx, s.selfID, s.otherID, text); err != nil {
		LogWarn("send message: %v", err)
		return err
	}

	s.mu.Lock()
	s.draft = ""
	s.mu.Unlock()
	s.runCycle(ctx)
	return nil
}

// Block blocks the other party; the local flag flips only after the
// server confirms. Returns false if another moderation call is in
// flight.
func (s *ConversationSync) Block(ctx context.Context) bool {
	return s.moderate(ctx, "block", func() error {
		if err := s.client.Block(ctx, s.selfID, s.otherID); err != nil {
			return err
		}
		s.mu.Lock()
		s.view.BlockedByMe = true
		s.mu.Unlock()
		return nil
	})
}

// Unblock lifts a block placed by self
func (s *ConversationSync) Unblock(ctx context.Context) bool {
	return s.moderate(ctx, "unblock", func() error {
		if err := s.client.Unblock(ctx, s.selfID, s.otherID); err != nil {
			return err
		}
		s.mu.Lock()
		s.view.BlockedByMe = false
		s.mu.Unlock()
		return nil
	})
}

// Report reports the other party
func (s *ConversationSync) Report(ctx context.Context) bool {
	return s.moderate(ctx, "report", func() error {
		return s.client.Report(ctx, s.selfID, s.otherID)
	})
}

// ClearChat deletes the conversation history on the server and locally
func (s *ConversationSync) ClearChat(ctx context.Context) bool {
	return s.moderate(ctx, "clear chat", func() error {
		if err := s.client.ClearChat(ctx, s.selfID, s.otherID); err != nil {
			return err
		}
		s.mu.Lock()
		s.view.Messages = nil
		s.mu.Unlock()
		return nil
	})
}

// moderate runs one idempotent-intent moderation call under the busy
// flag so rapid repeated invocations cannot stack duplicate requests.
// Failures are logged and swallowed.
func (s *ConversationSync) moderate(ctx context.Context, op string, fn func() error) bool {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		LogDebug("%s: skipped, another action in flight", op)
		return false
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	bestEffort(op, fn)
	return true
}

// runCycle performs one sync: three concurrent fetches, then a commit.
// Fetch failures degrade (offline, empty partial data) instead of
// aborting; there is no error state.
func (s *ConversationSync) runCycle(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	var (
		wg      sync.WaitGroup
		page    *ConversationPage
		status  *BlockStatus
		online  []int64
		pageErr error
		statErr error
		onlnErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		page, pageErr = s.client.Conversation(ctx, s.selfID, s.otherID, 0, s.pageSize)
	}()
	go func() {
		defer wg.Done()
		status, statErr = s.client.BlockStatus(ctx, s.selfID, s.otherID)
	}()
	go func() {
		defer wg.Done()
		online, onlnErr = s.client.OnlineUsers(ctx)
	}()
	wg.Wait()

	if pageErr != nil {
		LogWarn("sync conversation: %v", pageErr)
	}
	if statErr != nil {
		LogWarn("sync block status: %v", statErr)
	}
	if onlnErr != nil {
		LogWarn("sync presence: %v", onlnErr)
	}

	view, ok := s.commit(seq, page, status, online, onlnErr == nil)
	if !ok {
		return
	}

	if s.OnUpdate != nil {
		s.OnUpdate(view)
	}

	s.notifySeen(ctx, view)
}

// commit replaces the view with this cycle's results. A commit from a
// cycle older than the last applied one is discarded, as is any commit
// after Close. Seen flags are carried forward so they never regress.
func (s *ConversationSync) commit(seq uint64, page *ConversationPage, status *BlockStatus, online []int64, presenceOK bool) (ConversationView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq <= s.committed {
		return ConversationView{}, false
	}
	s.committed = seq

	prev := s.view

	next := ConversationView{
		SelfID:       s.selfID,
		OtherID:      s.otherID,
		LastSyncedAt: time.Now(),
	}

	if page != nil {
		next.Messages = carrySeen(prev.Messages, page.Content)
	} else {
		next.Messages = prev.Messages
	}

	if status != nil {
		next.BlockedByMe = status.BlockedByMe
		next.BlockedMe = status.BlockedMe
	} else {
		next.BlockedByMe = prev.BlockedByMe
		next.BlockedMe = prev.BlockedMe
	}

	// Presence degrades to offline whenever the fetch failed.
	if presenceOK {
		for _, id := range online {
			if id == s.otherID {
				next.Online = true
				break
			}
		}
	}

	s.view = next
	return s.snapshotLocked(), true
}

// notifySeen fires the at-least-once mark-seen signal when the view
// contains unseen inbound messages. Failure is swallowed; the next
// cycle re-detects the same messages and tries again.
func (s *ConversationSync) notifySeen(ctx context.Context, view ConversationView) {
	for _, m := range view.Messages {
		if m.SenderID == s.otherID && m.ReceiverID == s.selfID && !m.Seen {
			bestEffort("mark seen", func() error {
				return s.client.MarkSeen(ctx, s.otherID, s.selfID)
			})
			return
		}
	}
}

func (s *ConversationSync) snapshotLocked() ConversationView {
	view := s.view
	view.Messages = append([]ChatMessage(nil), s.view.Messages...)
	return view
}

// carrySeen applies the seen-monotonicity rule: a message the previous
// view already marked seen stays seen even if the fresh fetch says
// otherwise.
func carrySeen(prev, next []ChatMessage) []ChatMessage {
	if len(prev) == 0 || len(next) == 0 {
		return next
	}
	seen := make(map[string]bool, len(prev))
	for _, m := range prev {
		if m.Seen {
			seen[m.key()] = true
		}
	}
	for i := range next {
		if !next[i].Seen && seen[next[i].key()] {
			next[i].Seen = true
		}
	}
	return next
}
