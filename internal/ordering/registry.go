package ordering

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
)

// DraftSession is a draft owned by one user. Target is set when the draft
// edits an existing order.
type DraftSession struct {
	mu      sync.Mutex
	closed  bool
	touched time.Time

	ID     string
	Owner  string
	Draft  *Draft
	Target *model.Order
}

// Close marks the session finished. The registry drops it once the
// current operation returns.
func (s *DraftSession) Close() { s.closed = true }

// DraftView is an immutable copy of a draft session.
type DraftView struct {
	ID         string
	Target     string
	Lines      []model.Line
	Total      string
	Diagnostic string
	Closed     bool
}

// View copies the session state.
func (s *DraftSession) View() DraftView {
	v := DraftView{
		ID:         s.ID,
		Lines:      s.Draft.Lines(),
		Total:      s.Draft.Total().StringFixed(2),
		Diagnostic: s.Draft.Diagnostic(),
		Closed:     s.closed,
	}
	if s.Target != nil {
		v.Target = s.Target.ID
	}
	return v
}

// DraftRegistry holds every open draft. Each draft is serialized by its own
// lock; the registry lock only guards the index.
type DraftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*DraftSession
	newID  func() string
	now    func() time.Time
}

// NewDraftRegistry creates an empty registry.
func NewDraftRegistry() *DraftRegistry {
	return &DraftRegistry{drafts: make(map[string]*DraftSession), newID: uuid.NewString, now: time.Now}
}

// Open registers a draft for owner and returns its view.
func (r *DraftRegistry) Open(owner string, d *Draft, target *model.Order) DraftView {
	if d == nil {
		d = NewDraft()
	}
	s := &DraftSession{ID: r.newID(), Owner: owner, Draft: d, Target: target, touched: r.now()}
	r.mu.Lock()
	r.drafts[s.ID] = s
	r.mu.Unlock()
	return s.View()
}

func (r *DraftRegistry) lookup(id, owner string) (*DraftSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.drafts[id]
	if !ok || s.Owner != owner {
		return nil, false
	}
	return s, true
}

// Do runs fn on the owner's draft while holding that draft's lock. A session
// closed by fn is removed from the registry.
func (r *DraftRegistry) Do(id, owner string, fn func(*DraftSession) error) (DraftView, error) {
	s, ok := r.lookup(id, owner)
	if !ok {
		return DraftView{}, domainErrors.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return DraftView{}, domainErrors.ErrNotFound
	}
	err := fn(s)
	s.touched = r.now()
	if s.closed {
		r.mu.Lock()
		delete(r.drafts, s.ID)
		r.mu.Unlock()
	}
	return s.View(), err
}

// Discard closes the draft.
func (r *DraftRegistry) Discard(id, owner string) error {
	_, err := r.Do(id, owner, func(s *DraftSession) error {
		s.Close()
		return nil
	})
	return err
}

// Expire drops drafts untouched for longer than idle and returns how many
// were dropped. Drafts busy with an operation are left for the next pass.
func (r *DraftRegistry) Expire(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	expired := 0
	for id, s := range r.drafts {
		if !s.mu.TryLock() {
			continue
		}
		if s.touched.Before(cutoff) {
			s.closed = true
			delete(r.drafts, id)
			expired++
		}
		s.mu.Unlock()
	}
	return expired
}

// Len returns the number of open drafts.
func (r *DraftRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}
