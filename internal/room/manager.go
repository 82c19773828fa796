package room

import (
	"errors"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"bluff-card/internal/config"
	"bluff-card/internal/shared"
)

// Store is the room registry the manager drives.
type Store interface {
	CreateRoom(roomID string) *shared.Room
	GetRoom(roomID string) (*shared.Room, bool)
	RemoveRoom(roomID string)
	AllRooms() []*shared.Room
	FindJoinable() (*shared.Room, bool)
}

// Sessions is the connection directory: envelope delivery plus liveness
// checks. The ws hub implements it.
type Sessions interface {
	Send(userID string, envelope shared.Envelope) error
	IsOnline(userID string) bool
}

// Manager owns every game session transition. All room mutations go through
// it, under the room's own mutex, so state changes for a single room are
// totally ordered.
type Manager struct {
	store    Store
	cfg      config.Config
	sessions Sessions

	timersMu sync.Mutex
	timers   map[string]*turnTimer
}

func NewManager(s Store, cfg config.Config, sessions Sessions) *Manager {
	return &Manager{
		store:    s,
		cfg:      cfg,
		sessions: sessions,
		timers:   map[string]*turnTimer{},
	}
}

// SetSessions late-binds the connection directory (the hub and the manager
// reference each other, so one side is wired after construction).
func (m *Manager) SetSessions(s Sessions) {
	m.sessions = s
}

var ErrRoomFull = errors.New("room not found or full")

// CreateRoom registers a fresh room with host seated, pulling the host out
// of any room they still occupy first.
func (m *Manager) CreateRoom(host *shared.Player) *shared.Room {
	m.RemoveUser(host.UserID)

	roomID := m.newRoomID()
	r := m.store.CreateRoom(roomID)

	host.IsHost = true
	host.Online = false
	host.LastSeen = time.Now()

	r.Mu.Lock()
	r.AddPlayer(host)
	r.Mu.Unlock()

	log.Printf("[room] created room %s for %s", roomID, host.UserID)
	return r
}

// JoinRoom seats player in roomID. Zombie seats are pruned before capacity
// is counted so stale occupants of a connection that never completed cannot
// block the room.
func (m *Manager) JoinRoom(roomID string, player *shared.Player) (*shared.Room, error) {
	m.RemoveUser(player.UserID)

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomFull
	}

	player.Online = false
	player.LastSeen = time.Now()

	r.Mu.Lock()
	m.pruneZombiesLocked(r)
	seated := len(r.Players) < shared.MaxPlayers && r.AddPlayer(player)
	r.Mu.Unlock()

	if !seated {
		return nil, ErrRoomFull
	}
	return r, nil
}

// QuickMatch drops the player into the first joinable room, or a new one.
func (m *Manager) QuickMatch(player *shared.Player) *shared.Room {
	m.RemoveUser(player.UserID)

	if r, ok := m.store.FindJoinable(); ok {
		player.Online = false
		player.LastSeen = time.Now()

		r.Mu.Lock()
		m.pruneZombiesLocked(r)
		seated := len(r.Players) < shared.MaxPlayers && r.AddPlayer(player)
		r.Mu.Unlock()

		if seated {
			return r
		}
	}
	return m.CreateRoom(player)
}

// RemoveUser pulls userID out of whatever room they occupy. Mid-game this is
// an abnormal removal and falls through to the online-count check; otherwise
// the seat is freed, the host role reassigned and the room reset to WAITING.
func (m *Manager) RemoveUser(userID string) {
	for _, r := range m.store.AllRooms() {
		r.Mu.Lock()

		removed := false
		for i, p := range r.Players {
			if p.UserID == userID {
				r.Players = append(r.Players[:i], r.Players[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			r.Mu.Unlock()
			continue
		}

		if r.Status == shared.StatusPlaying {
			m.settleAbandonedLocked(r)
			continue // settleAbandonedLocked released the lock
		}

		if len(r.Players) == 0 {
			roomID := r.RoomID
			r.Mu.Unlock()
			m.cancelTurnTimer(roomID)
			m.store.RemoveRoom(roomID)
			log.Printf("[room] room %s empty, removed", roomID)
			continue
		}

		hostSeated := false
		for _, p := range r.Players {
			if p.IsHost {
				hostSeated = true
				break
			}
		}
		if !hostSeated {
			r.Players[0].IsHost = true
		}
		r.Status = shared.StatusWaiting
		for _, p := range r.Players {
			p.Ready = false
		}
		views := snapshotViews(r)
		r.Mu.Unlock()

		m.sendViews(views, shared.TypeRoomUpdate)
	}
}

// settleAbandonedLocked handles a seat vanishing from a PLAYING room: with at
// most one player still online the game force-ends, otherwise play continues.
// Takes r.Mu held and releases it.
func (m *Manager) settleAbandonedLocked(r *shared.Room) {
	if r.OnlineCount() > 1 {
		views := snapshotViews(r)
		r.Mu.Unlock()
		m.sendViews(views, shared.TypeGameUpdate)
		return
	}

	var winner *shared.Player
	for _, p := range r.Players {
		if p.Online {
			winner = p
			break
		}
	}
	if winner == nil {
		roomID := r.RoomID
		r.Mu.Unlock()
		m.cancelTurnTimer(roomID)
		m.store.RemoveRoom(roomID)
		log.Printf("[room] room %s abandoned with nobody online, removed", roomID)
		return
	}

	log.Printf("[room] room %s force-ended, %s wins by abandonment", r.RoomID, winner.UserID)
	over, views := m.finishGameLocked(r, winner, ReasonAbandoned)
	r.Mu.Unlock()

	m.sendAll(views, shared.TypeGameOver, over)
	m.sendViews(views, shared.TypeRoomUpdate)
}

// pruneZombiesLocked drops seats with no live connection that have been
// silent past the grace window. A seat whose websocket is up is never a
// zombie no matter how old its LastSeen is. Caller holds r.Mu.
func (m *Manager) pruneZombiesLocked(r *shared.Room) {
	now := time.Now()
	kept := r.Players[:0]
	for _, p := range r.Players {
		if m.sessions != nil && m.sessions.IsOnline(p.UserID) {
			kept = append(kept, p)
			continue
		}
		if now.Sub(p.LastSeen) > m.cfg.ZombieGrace {
			log.Printf("[room] pruned zombie seat %s from room %s", p.UserID, r.RoomID)
			continue
		}
		kept = append(kept, p)
	}
	r.Players = kept
}

// RoomSummary is the registry view served on the rooms listing.
type RoomSummary struct {
	RoomID      string `json:"roomId"`
	Status      string `json:"status"`
	PlayerCount int    `json:"playerCount"`
}

func (m *Manager) RoomSummaries() []RoomSummary {
	rooms := m.store.AllRooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		r.Mu.Lock()
		out = append(out, RoomSummary{
			RoomID:      r.RoomID,
			Status:      r.Status,
			PlayerCount: len(r.Players),
		})
		r.Mu.Unlock()
	}
	return out
}

// Get returns the room for roomID.
func (m *Manager) Get(roomID string) (*shared.Room, bool) {
	return m.store.GetRoom(roomID)
}

func (m *Manager) newRoomID() string {
	for {
		id := strconv.Itoa(rand.Intn(9000) + 1000)
		if _, exists := m.store.GetRoom(id); !exists {
			return id
		}
	}
}

// sendViews fans a per-viewer payload out to every seated player.
func (m *Manager) sendViews(views map[string]any, typ string) {
	if m.sessions == nil {
		return
	}
	for userID, payload := range views {
		if err := m.sessions.Send(userID, shared.Envelope{Type: typ, Payload: payload}); err != nil {
			log.Printf("[room] send %s to %s failed: %v", typ, userID, err)
		}
	}
}

// sendAll sends one shared payload to every seat present in views.
func (m *Manager) sendAll(views map[string]any, typ string, payload any) {
	if m.sessions == nil {
		return
	}
	for userID := range views {
		if err := m.sessions.Send(userID, shared.Envelope{Type: typ, Payload: payload}); err != nil {
			log.Printf("[room] send %s to %s failed: %v", typ, userID, err)
		}
	}
}
