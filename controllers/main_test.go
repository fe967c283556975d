// file: controllers/main_test.go
package controllers

import (
	"encoding/gob"
	"os"
	"testing"

	"github.com/tanzeelak/tea-rater-frontend/websocket"
)

func TestMain(m *testing.M) {
	gob.Register([]int{}) // flow cursor in the cookie session
	websocket.InitTest()
	go websocket.HandleMessages() // start only once

	code := m.Run()
	os.Exit(code)
}
