package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/iternull/kendobar-pos/events"
	"github.com/iternull/kendobar-pos/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEvents upgrades the connection and keeps it registered with the
// broadcast hub until the client drops.
func HandleEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	role := "staff"
	if r, exists := c.Get("role"); exists {
		if s, ok := r.(string); ok {
			role = s
		}
	}
	events.RegisterClient(conn, role)

	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
