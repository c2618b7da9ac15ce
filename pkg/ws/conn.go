package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// ClientConn is the transport seen by the session and broadcast layers.
// Tests substitute an in-memory implementation; production conns wrap a
// gorilla websocket.
type ClientConn interface {
	WriteJSON(v any) error
	Close() error
}

// lockedConn serializes writes; a websocket connection supports one
// concurrent writer only, and the broadcast pass and delegated-command
// replies run on different goroutines.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newLockedConn(conn *websocket.Conn) *lockedConn {
	return &lockedConn{conn: conn}
}

func (c *lockedConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *lockedConn) Close() error {
	return c.conn.Close()
}
