package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bluff-card/internal/api/ws"
	"bluff-card/internal/room"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func NewRouter(rm *room.Manager, hub *ws.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	// WebSocket for the in-game protocol
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/api/room/create", CreateRoomHandler(rm))
	r.POST("/api/room/join", JoinRoomHandler(rm))
	r.POST("/api/room/match", QuickMatchHandler(rm))
	r.GET("/rooms", ListRoomsHandler(rm))

	return r
}
