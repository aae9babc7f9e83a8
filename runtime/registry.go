package runtime

import (
	"chat-courier/contract"
	"sort"
	"sync"
)

var _ contract.IRegistry = (*Registry)(nil)

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]contract.Session // map user -> connection -> session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]map[string]contract.Session)}
}

// Register adds a live connection of a user.
// A user may hold several connections at once (tabs, devices).
func (r *Registry) Register(session contract.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.UserID]; !ok {
		r.sessions[session.UserID] = make(map[string]contract.Session)
	}
	r.sessions[session.UserID][session.ConnectionID] = session
}

// Unregister removes one connection and returns how many the user still has.
// The user entry disappears with its last connection.
func (r *Registry) Unregister(userID, connectionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	connections, ok := r.sessions[userID]
	if !ok {
		return 0
	}
	delete(connections, connectionID)
	if len(connections) == 0 {
		delete(r.sessions, userID)
		return 0
	}
	return len(connections)
}

// ConnectionsFor returns a snapshot ordered by connection id.
// Returns nil if the user is offline.
func (r *Registry) ConnectionsFor(userID string) []contract.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connections, ok := r.sessions[userID]
	if !ok {
		return nil
	}
	sessions := make([]contract.Session, 0, len(connections))
	for _, s := range connections {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ConnectionID < sessions[j].ConnectionID })
	return sessions
}

// Online returns the number of users with at least one connection.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
