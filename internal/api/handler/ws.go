package handler

import (
	"net/http"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten this in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and subscribes the caller to
// status-changed events. Browsers cannot set headers on WebSocket
// requests, so the token is also accepted as a query parameter.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	user, err := h.Auth.Authenticate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &notify.Client{
		Hub:    h.Hub,
		UserID: user.ID,
		Conn:   conn,
		Send:   make(chan models.StatusEvent, 16),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
