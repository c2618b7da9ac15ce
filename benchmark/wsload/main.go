package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var maxClients int = 500
var hostPort string = "127.0.0.1:3413"
var username string = "admin"
var password string = "admin"
var measureFor time.Duration = 30 * time.Second

var liveUpdates atomic.Int64
var authFailures atomic.Int64

type typedMessage struct {
	Type string `json:"type"`
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", hostPort))
	if err != nil {
		log.Fatal("Failed to connect to server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("Server not available")
	}

	fmt.Printf("server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	conns := make([]*websocket.Conn, maxClients)
	for i := 0; i < maxClients; i++ {
		i := i
		wg.Add(1)
		go func() {
			conns[i] = connectAndAuth()
			fmt.Printf("\rauthenticated client %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rauthenticated %v clients (%v failures): used time=%v seconds, throughput=%v auth/second\n",
		maxClients, authFailures.Load(), usedTime.Seconds(), float64(maxClients)/usedTime.Seconds(),
	)

	deadline := time.Now().Add(measureFor)
	wg = sync.WaitGroup{}
	for i := 0; i < maxClients; i++ {
		i := i
		if conns[i] == nil {
			continue
		}
		wg.Add(1)
		go func() {
			countLiveUpdates(conns[i], deadline)
			wg.Done()
		}()
	}
	wg.Wait()

	total := liveUpdates.Load()
	fmt.Printf(
		"received %v live updates across %v clients in %v seconds: throughput=%v update/second\n",
		total, maxClients, measureFor.Seconds(), float64(total)/measureFor.Seconds(),
	)
}

func connectAndAuth() *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws", hostPort), nil)
	if err != nil {
		authFailures.Add(1)
		return nil
	}

	auth := map[string]string{"type": "AUTH", "username": username, "password": password}
	if err := conn.WriteJSON(auth); err != nil {
		authFailures.Add(1)
		_ = conn.Close()
		return nil
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		authFailures.Add(1)
		_ = conn.Close()
		return nil
	}

	var msg typedMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "AUTH_SUCCESS" {
		authFailures.Add(1)
		_ = conn.Close()
		return nil
	}

	return conn
}

func countLiveUpdates(conn *websocket.Conn, deadline time.Time) {
	defer conn.Close()

	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			return
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg typedMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == "LIVE_UPDATE" {
			liveUpdates.Add(1)
		}
	}
}
