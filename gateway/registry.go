package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn wraps a websocket connection with a write mutex; gorilla permits
// at most one concurrent writer per connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Registry tracks the open websocket connections of this process, keyed by
// connection ID. It is the delivery side of the session engine: handlers
// address peers by connection ID and the registry resolves those to
// sockets. Connections living on other instances are not reachable here;
// sends to them fail and are dropped by the caller.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*wsConn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*wsConn)}
}

func (r *Registry) Register(connection string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[connection] = &wsConn{conn: conn}
}

func (r *Registry) Unregister(connection string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, connection)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Send delivers payload to the given connection as a text message. It
// implements the delivery contract of the session handlers.
func (r *Registry) Send(ctx context.Context, connection string, payload []byte) error {
	r.mu.RLock()
	c := r.conns[connection]
	r.mu.RUnlock()

	if c == nil {
		return fmt.Errorf("connection %s is not open here", connection)
	}
	if payload == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		// A failed write means the socket is gone. Closing it unblocks
		// the read loop, which unregisters and cleans up.
		c.conn.Close()
		return err
	}
	return nil
}
