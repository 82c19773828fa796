package http

// PlayerRequest represents the payload for /api/room/create, /api/room/join
// and /api/room/match. An empty userId makes the server mint one.
type PlayerRequest struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}
