// Package websocket pushes refresh signals to open dashboards.
// file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"github.com/tanzeelak/tea-rater-frontend/logger"
)

// refreshMessage is what the browser receives; on seeing a seq newer
// than the one it rendered with, it re-fetches the dashboard.
type refreshMessage struct {
	Action string `json:"action"`
	UserID int    `json:"user_id"`
	Seq    uint64 `json:"seq"`
}

// HandleMessages listens on the broadcast channel and fans each message
// out to the matching user's connections. Run once, from main.
func HandleMessages() {
	for msg := range broadcast {
		var parsed refreshMessage
		userFilter := 0
		if err := json.Unmarshal(msg, &parsed); err == nil {
			userFilter = parsed.UserID
		}

		connectionsMu.Lock()
		for c := range connections {
			// user 0 means broadcast to everyone
			if userFilter != 0 && c.userID != userFilter {
				continue
			}
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("HandleMessages: dropping refresh for slow connection %v", c.conn.RemoteAddr())
			}
		}
		connectionsMu.Unlock()

		PublishRefreshBroadcasts(1)
	}
}

// BroadcastRefresh tells every open dashboard of the given user that its
// data is stale. Called after any completed mutation.
func BroadcastRefresh(userID int, seq uint64) {
	msg, err := json.Marshal(refreshMessage{Action: "refresh", UserID: userID, Seq: seq})
	if err != nil {
		logger.Error.Printf("BroadcastRefresh: error marshalling message: %v", err)
		return
	}
	logger.Debug.Printf("BroadcastRefresh: user=%d seq=%d", userID, seq)
	broadcast <- msg
}
