package booking

import (
	"sync"
	"time"

	"tourbooking/internal/domain"
)

type session struct {
	selectedDate   *time.Time
	travelers      domain.TravelerCounts
	tempTourID     int64
	tempActivities []string
}

// SessionStore holds the shared trip details per user: one date and one
// set of traveler counts applied to every line item in that user's cart,
// plus a one-shot activity slot carried between the tour and booking
// pages. Nothing here is durable; Reset is called on logout.
//
// The store is an injected dependency, never a package global, and is
// mutex-guarded because HTTP handlers run concurrently.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*session)}
}

func (s *SessionStore) get(userID int64) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{travelers: domain.DefaultTravelers()}
		s.sessions[userID] = sess
	}
	return sess
}

// Selection returns a copy of the user's shared trip details. Activities
// are per tour and never part of the shared state.
func (s *SessionStore) Selection(userID int64) domain.BookingSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.BookingSelection{Travelers: domain.DefaultTravelers()}
	}

	sel := domain.BookingSelection{Travelers: sess.travelers}
	if sess.selectedDate != nil {
		d := *sess.selectedDate
		sel.SelectedDate = &d
	}
	return sel
}

func (s *SessionStore) UpdateDate(userID int64, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := date
	s.get(userID).selectedDate = &d
}

func (s *SessionStore) UpdateTravelers(userID int64, counts domain.TravelerCounts) error {
	if counts.Adults < minAdults || counts.Children < 0 || counts.Infants < 0 {
		return ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).travelers = counts
	return nil
}

// SetTempActivities stashes an activity selection for one tour while the
// client navigates from the tour page to the booking page.
func (s *SessionStore) SetTempActivities(userID, tourID int64, activities []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(userID)
	sess.tempTourID = tourID
	sess.tempActivities = append([]string(nil), activities...)
}

// ConsumeTempActivities reads the slot at most once: a hit clears it so
// a remount cannot reuse stale state. A different tour id is a miss and
// leaves the slot alone.
func (s *SessionStore) ConsumeTempActivities(userID, tourID int64) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.tempActivities == nil || sess.tempTourID != tourID {
		return nil, false
	}

	acts := sess.tempActivities
	sess.tempTourID = 0
	sess.tempActivities = nil
	return acts, true
}

func (s *SessionStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
