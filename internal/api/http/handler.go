package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bluff-card/internal/room"
	"bluff-card/internal/shared"
)

func bindPlayer(c *gin.Context) (*shared.Player, bool) {
	var req PlayerRequest
	if err := c.BindJSON(&req); err != nil || req.Nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nickname required"})
		return nil, false
	}
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}
	return &shared.Player{UserID: req.UserID, Nickname: req.Nickname}, true
}

func roomResponse(c *gin.Context, r *shared.Room, userID string) {
	r.Mu.Lock()
	view := room.SnapshotFor(r, userID)
	r.Mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"userId": userID, "room": view})
}

// @Summary Create new room
// @Description Create a new room with the caller seated as host
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/room/create [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := bindPlayer(c)
		if !ok {
			return
		}
		rx := rm.CreateRoom(p)
		roomResponse(c, rx, p.UserID)
	}
}

// @Summary Join an existing room
// @Description Seat the caller in the room identified by roomId
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId query string true "Room ID"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/room/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Query("roomId")
		if roomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId required"})
			return
		}
		p, ok := bindPlayer(c)
		if !ok {
			return
		}
		rx, err := rm.JoinRoom(roomID, p)
		if err != nil {
			if errors.Is(err, room.ErrRoomFull) {
				c.JSON(http.StatusConflict, gin.H{"error": "room not found or full"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		roomResponse(c, rx, p.UserID)
	}
}

// @Summary Quick match
// @Description Seat the caller in the first joinable room, creating one if needed
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/room/match [post]
func QuickMatchHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := bindPlayer(c)
		if !ok {
			return
		}
		rx := rm.QuickMatch(p)
		roomResponse(c, rx, p.UserID)
	}
}

// @Summary List rooms
// @Description List every room with seat count and status
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.RoomSummaries()})
	}
}
