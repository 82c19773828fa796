package ws

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bluff-card/internal/game"
	"bluff-card/internal/shared"
)

// session is one live connection. The mutex serializes writes so a
// connection never sees two interleaved frames.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Hub is the connection directory: it maps user ids to live websocket
// sessions, dispatches the inbound protocol into the engine and fans
// outbound envelopes back out. It implements the engine's Sessions
// dependency.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	engine   Engine
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*session),
	}
}

// SetEngine late-binds the game engine (hub and engine reference each other).
func (h *Hub) SetEngine(e Engine) {
	h.engine = e
}

var errNotConnected = errors.New("user has no live connection")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// clientMessage is the single inbound frame shape; type-specific fields stay
// empty for the types that do not use them.
type clientMessage struct {
	Type        string      `json:"type"`
	UserID      string      `json:"userId"`
	RoomID      string      `json:"roomId"`
	Cards       []game.Card `json:"cards,omitempty"`
	ClaimedRank string      `json:"claimedRank,omitempty"`
}

// HandleWS upgrades the connection and pumps its messages into the engine.
// The connection is bound to a userId by the first message carrying one; a
// rebind with a fresh connection replaces the old session (reconnect).
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	sess := &session{conn: conn}
	boundUser := ""

	defer func() {
		if boundUser != "" {
			h.unbind(boundUser, sess)
			h.engine.HandleDisconnect(boundUser)
		}
		_ = conn.Close()
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for %q: %v", boundUser, err)
			}
			return
		}

		if msg.UserID != "" && msg.UserID != boundUser {
			if boundUser != "" {
				h.unbind(boundUser, sess)
			}
			boundUser = msg.UserID
			h.bind(boundUser, sess)
		}

		switch msg.Type {
		case "PING":
			if err := sess.writeJSON(shared.Envelope{Type: shared.TypePong}); err != nil {
				log.Printf("[ws] pong to %q failed: %v", boundUser, err)
			}
		case "JOIN":
			h.engine.HandleJoin(msg.RoomID, msg.UserID)
		case "READY":
			h.engine.HandleReady(msg.RoomID, msg.UserID)
		case "LEAVE":
			h.engine.RemoveUser(msg.UserID)
		case "PLAY":
			h.engine.HandlePlay(msg.RoomID, msg.UserID, msg.Cards, msg.ClaimedRank)
		case "CHALLENGE":
			h.engine.HandleChallenge(msg.RoomID, msg.UserID)
		case "PASS":
			h.engine.HandlePass(msg.RoomID, msg.UserID)
		default:
			log.Printf("[ws] unknown message type %q from %q", msg.Type, boundUser)
		}
	}
}

func (h *Hub) bind(userID string, s *session) {
	h.mu.Lock()
	h.sessions[userID] = s
	h.mu.Unlock()
}

// unbind drops the mapping only if it still points at this session; a
// reconnect may already have replaced it.
func (h *Hub) unbind(userID string, s *session) {
	h.mu.Lock()
	if cur, ok := h.sessions[userID]; ok && cur == s {
		delete(h.sessions, userID)
	}
	h.mu.Unlock()
}

// Send delivers one envelope to the user's live connection. A missing
// session is an error for the caller to log; it never aborts a broadcast to
// other seats.
func (h *Hub) Send(userID string, envelope shared.Envelope) error {
	h.mu.RLock()
	s, ok := h.sessions[userID]
	h.mu.RUnlock()
	if !ok {
		return errNotConnected
	}
	return s.writeJSON(envelope)
}

// IsOnline reports whether the user has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	_, ok := h.sessions[userID]
	h.mu.RUnlock()
	return ok
}
