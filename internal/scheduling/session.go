package scheduling

import (
	"sync"
	"time"

	"github.com/msinoftech/getsettime/internal/availability"
)

// Selection identifies one slot query: a workspace, an optional
// provider, an event type, and a local date.
type Selection struct {
	WorkspaceID string
	ProviderID  string
	EventTypeID string
	Date        time.Time
}

// Equal reports whether two selections resolve the same slot list.
// Dates compare by local calendar day, not by instant.
func (s Selection) Equal(other Selection) bool {
	return s.WorkspaceID == other.WorkspaceID &&
		s.ProviderID == other.ProviderID &&
		s.EventTypeID == other.EventTypeID &&
		availability.SameLocalDate(s.Date, other.Date)
}

// Session guards against stale slot fetches. When a caller switches
// provider, event type, or date while a fetch is in flight, the result
// of the older fetch must be discarded instead of overwriting the
// newer selection's slots.
type Session struct {
	mu      sync.RWMutex
	current Selection
	set     bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Select records the active selection and returns it as the token the
// eventual fetch result must be checked against.
func (s *Session) Select(sel Selection) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sel
	s.set = true
	return sel
}

// Current returns the active selection, if any.
func (s *Session) Current() (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.set
}

// Stale reports whether a fetch begun for sel no longer matches the
// active selection and its result should be dropped.
func (s *Session) Stale(sel Selection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return true
	}
	return !s.current.Equal(sel)
}
