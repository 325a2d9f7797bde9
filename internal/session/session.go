// Package session keeps per-user conversation state. Each user owns
// exactly one request draft at a time; the store hands out that
// exclusive slot and clears it when the conversation ends.
package session

import "sync"

// State tags the step of the intake conversation a user is on.
type State string

const (
	StateIdle         State = "idle"
	StateSocialNet    State = "social_net"
	StateService      State = "service"
	StateLink         State = "link"
	StatePlan         State = "plan"
	StatePhone        State = "phone"
	StateEmail        State = "email"
	StateComment      State = "comment"
	StateConfirmation State = "confirmation"
)

// Request is the intake form built up one field per completed step.
// Optional fields stay empty when the user skips them.
type Request struct {
	UserID   int64
	Username string

	SocialNet    string
	ServiceCode  string
	ServiceLabel string
	Link         string
	Price        int
	PlanLabel    string
	Phone        string
	Email        string
	Comment      string
	PaymentLink  string

	State State
}

// Store maps Telegram user ids to their single active request.
type Store struct {
	mu       sync.RWMutex
	requests map[int64]*Request
}

func NewStore() *Store {
	return &Store{requests: make(map[int64]*Request)}
}

// Get returns the user's active request, or nil if none exists.
func (s *Store) Get(userID int64) *Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests[userID]
}

// Start discards any previous draft and begins a fresh request for the
// user.
func (s *Store) Start(userID int64, username string) *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := &Request{UserID: userID, Username: username, State: StateSocialNet}
	s.requests[userID] = req
	return req
}

// Clear drops the user's request entirely.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, userID)
}
