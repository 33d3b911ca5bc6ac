package ws

import (
	"sync"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// Session is what the hub needs from a running session.
type Session interface {
	Report() types.SessionReport
}

// Hub tracks active sessions by ID so the HTTP surface can resolve
// them while they run.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewHub() *Hub {
	return &Hub{sessions: map[string]Session{}}
}

func (h *Hub) Add(id string, s Session) {
	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()
}

func (h *Hub) Get(id string) (Session, bool) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	return s, ok
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *Hub) IDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	return ids
}
