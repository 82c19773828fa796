package store

import (
	"sync"
	"time"

	"bluff-card/internal/shared"
)

// MemoryStore is the in-memory room registry. It only guards the map itself;
// room state is protected by each room's own mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*shared.Room
	order []string // insertion order, keeps scans deterministic
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*shared.Room{},
	}
}

// CreateRoom registers a new empty WAITING room under roomID.
func (m *MemoryStore) CreateRoom(roomID string) *shared.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &shared.Room{
		RoomID:    roomID,
		Status:    shared.StatusWaiting,
		CreatedAt: time.Now(),
	}
	if _, exists := m.rooms[roomID]; !exists {
		m.order = append(m.order, roomID)
	}
	m.rooms[roomID] = r
	return r
}

func (m *MemoryStore) GetRoom(roomID string) (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

func (m *MemoryStore) RemoveRoom(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[roomID]; !ok {
		return
	}
	delete(m.rooms, roomID)
	for i, id := range m.order {
		if id == roomID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// AllRooms returns every room in insertion order.
func (m *MemoryStore) AllRooms() []*shared.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*shared.Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rooms[id])
	}
	return out
}

// FindJoinable returns the first WAITING room with a free seat, in insertion
// order. Capacity is re-checked by the caller under the room lock.
func (m *MemoryStore) FindJoinable() (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		r := m.rooms[id]
		r.Mu.Lock()
		joinable := r.Status == shared.StatusWaiting && len(r.Players) < shared.MaxPlayers
		r.Mu.Unlock()
		if joinable {
			return r, true
		}
	}
	return nil, false
}
