package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/iternull/kendobar-pos/utils"
)

// Event types pushed to connected staff dashboards.
const (
	EventTableUpdate    = "table_update"
	EventOrderAdded     = "order_added"
	EventOrderCanceled  = "order_canceled"
	EventOrderCompleted = "order_completed"
	EventTableSettled   = "table_settled"
	EventTakeoutSettled = "takeout_settled"
	EventTimerStarted   = "timer_started"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client and fans events out to all
// of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its staff role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast sends one event to every connected client.
func Broadcast(event string, data interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event %s: %v", event, err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending event to client: %v", err)
		}
	}
}
