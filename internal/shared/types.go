package shared

import (
	"sync"
	"time"

	"bluff-card/internal/game"
)

// Room status values.
const (
	StatusWaiting  = "WAITING"
	StatusPlaying  = "PLAYING"
	StatusFinished = "FINISHED"
)

// MaxPlayers is the fixed seat count; a hand needs exactly this many.
const MaxPlayers = 3

// Outbound envelope types.
const (
	TypeRoomUpdate      = "ROOM_UPDATE"
	TypeGameStart       = "GAME_START"
	TypeGameUpdate      = "GAME_UPDATE"
	TypeGameOver        = "GAME_OVER"
	TypeChallengeResult = "CHALLENGE_RESULT"
	TypePong            = "PONG"
)

// Envelope wraps every outbound message.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Player is one seat in a room. Hands are never serialized directly;
// snapshots expose the viewer's own cards and only counts for the rest.
type Player struct {
	UserID   string      `json:"userId"`
	Nickname string      `json:"nickname"`
	Hand     []game.Card `json:"-"`
	Ready    bool        `json:"ready"`
	IsHost   bool        `json:"isHost"`
	Online   bool        `json:"online"`
	LastSeen time.Time   `json:"-"`
}

// CardCount is the only hand information other players ever see.
func (p *Player) CardCount() int {
	return len(p.Hand)
}

// Room holds the authoritative state of one game session. Every
// read-modify-broadcast sequence must run under Mu; locking is per-room so
// unrelated games never contend.
type Room struct {
	Mu sync.Mutex `json:"-"`

	RoomID             string      `json:"roomId"`
	Players            []*Player   `json:"players"`
	DeskPile           []game.Card `json:"-"`
	Status             string      `json:"status"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	LastClaimedRank    string      `json:"lastClaimedRank,omitempty"`
	LastPlayedCards    []game.Card `json:"-"`
	LastPlayerID       string      `json:"lastPlayerId,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// AddPlayer seats the player. A player already holding a seat with the same
// userId is replaced in place so seat order survives a reconnect; otherwise
// the player is appended. Returns false when the room is full.
func (r *Room) AddPlayer(p *Player) bool {
	for i, seated := range r.Players {
		if seated.UserID == p.UserID {
			r.Players[i] = p
			return true
		}
	}
	if len(r.Players) >= MaxPlayers {
		return false
	}
	r.Players = append(r.Players, p)
	return true
}

// FindPlayer returns the seat holding userID, or nil.
func (r *Room) FindPlayer(userID string) *Player {
	for _, p := range r.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the seat whose turn it is, or nil when the index is
// out of range.
func (r *Room) CurrentPlayer() *Player {
	if r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// OnlineCount returns how many seats have a live connection.
func (r *Room) OnlineCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Online {
			n++
		}
	}
	return n
}
