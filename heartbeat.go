// file: heartbeat.go
package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tanzeelak/tea-rater-frontend/logger"
)

var (
	tasterSessions = make(map[string]time.Time)
	sessionLock    = sync.Mutex{}
)

// HeartbeatHandler updates the last seen timestamp of a taster's
// dashboard. The page pings this while open so we can tell which
// sessions are live.
func HeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	tasterID := r.URL.Query().Get("taster_id")
	if tasterID == "" {
		logger.Warn.Println("[HeartbeatHandler] Missing taster ID in query params")
		http.Error(w, "Missing taster ID", http.StatusBadRequest)
		return
	}

	sessionLock.Lock()
	tasterSessions[tasterID] = time.Now()
	sessionLock.Unlock()

	logger.Debug.Printf("[HeartbeatHandler] Updated heartbeat for taster=%s", tasterID)

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintln(w, "Heartbeat received"); err != nil {
		logger.Warn.Printf("[HeartbeatHandler] Error writing response for taster=%s: %v", tasterID, err)
	}
}

// ActiveTasters returns how many dashboards have pinged within the
// timeout.
func ActiveTasters(timeout time.Duration) int {
	sessionLock.Lock()
	defer sessionLock.Unlock()

	count := 0
	for _, lastSeen := range tasterSessions {
		if time.Since(lastSeen) <= timeout {
			count++
		}
	}
	return count
}

// CleanupRoutine removes tasters that have gone quiet.
func CleanupRoutine() {
	ticker := time.NewTicker(10 * time.Second)
	for range ticker.C {
		sessionLock.Lock()
		for id, lastSeen := range tasterSessions {
			if time.Since(lastSeen) > 30*time.Minute {
				logger.Info.Printf("[CleanupRoutine] Removing inactive taster=%s", id)
				delete(tasterSessions, id)
			}
		}
		sessionLock.Unlock()
	}
}
