package ws

import "bluff-card/internal/game"

// Engine is what the hub dispatches inbound protocol messages into. The room
// manager implements it.
type Engine interface {
	HandleJoin(roomID, userID string)
	HandleReady(roomID, userID string)
	HandlePlay(roomID, userID string, cards []game.Card, claimedRank string)
	HandlePass(roomID, userID string)
	HandleChallenge(roomID, userID string)
	// RemoveUser frees the user's seat entirely (explicit LEAVE).
	RemoveUser(userID string)
	// HandleDisconnect marks the user's seat offline (transport drop).
	HandleDisconnect(userID string)
}
