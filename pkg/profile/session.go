package profile

import (
	"sync"

	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type EventHandler func(evt any)

// Session holds the authenticated user shared by the profile controllers.
// Readers always get a private copy; writers replace the whole value, so a
// reader never observes a partially applied mutation.
type Session struct {
	lock         sync.RWMutex
	user         *types.User
	eventHandler EventHandler
}

func NewSession(user *types.User, handler EventHandler) *Session {
	return &Session{user: user.Clone(), eventHandler: handler}
}

// User returns a copy of the session user or nil while unauthenticated.
func (s *Session) User() *types.User {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user.Clone()
}

func (s *Session) UserID() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Session) Set(user *types.User) {
	s.lock.Lock()
	s.user = user.Clone()
	s.lock.Unlock()
	s.dispatch(event.SessionChanged{User: user.Clone()})
}

func (s *Session) Clear() {
	s.Set(nil)
}

// Update applies fn to a copy of the user and swaps it in. It returns the
// pre-image so callers can roll back, and false if there is no session user.
func (s *Session) Update(fn func(u *types.User)) (*types.User, bool) {
	s.lock.Lock()
	if s.user == nil {
		s.lock.Unlock()
		return nil, false
	}
	previous := s.user
	next := previous.Clone()
	fn(next)
	s.user = next
	s.lock.Unlock()
	return previous.Clone(), true
}

func (s *Session) dispatch(evt any) {
	if s.eventHandler != nil {
		s.eventHandler(evt)
	}
}
