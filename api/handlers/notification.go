package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotificationHub tracks the admin consoles connected to the urgent feed
type NotificationHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

var hub = &NotificationHub{
	clients: make(map[string]*websocket.Conn),
	mutex:   sync.Mutex{},
}

// HandleAdminNotificationsWebSocket upgrades an admin console connection and
// registers it for urgent complaint events. The route is behind the admin
// middleware, so anything that reaches here already carries a valid session.
func HandleAdminNotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	adminID := r.URL.Query().Get("adminId")
	if adminID == "" {
		conn.Close()
		return
	}

	hub.mutex.Lock()
	hub.clients[adminID] = conn
	hub.mutex.Unlock()
	zap.S().Infow("admin connected to urgent feed", "adminId", adminID)

	conn.SetCloseHandler(func(code int, text string) error {
		hub.mutex.Lock()
		delete(hub.clients, adminID)
		hub.mutex.Unlock()
		zap.S().Infow("admin disconnected from urgent feed", "adminId", adminID)
		return nil
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// broadcastUrgentComplaint pushes an urgent complaint event to every
// connected admin console. Dead connections are dropped on write failure.
func broadcastUrgentComplaint(data map[string]interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for adminID, conn := range hub.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "urgent_complaint",
			"data":  data,
		})
		if err != nil {
			zap.S().Warnw("dropping dead urgent feed connection", "adminId", adminID, "error", err)
			delete(hub.clients, adminID)
			conn.Close()
		}
	}
}
