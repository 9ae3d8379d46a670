package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 64
)

// conn adapts one gorilla connection to the session's Conn contract: Send
// marshals immediately, so the payload reflects the state at the moment of
// the broadcast, and enqueues without blocking.
type conn struct {
	logger *slog.Logger
	ws     *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

func newConn(logger *slog.Logger, ws *websocket.Conn) *conn {
	return &conn{
		logger: logger.With("component", "conn"),
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (that *conn) Send(message any) {
	raw, err := json.Marshal(message)
	if err != nil {
		that.logger.Error("failed to marshal message", "error", err)
		return
	}

	select {
	case that.send <- raw:
	case <-that.done:
	default:
		// a peer that cannot drain its buffer is dropped rather than
		// allowed to stall a session step
		that.logger.Warn("send buffer full, closing connection")
		that.close()
	}
}

func (that *conn) close() {
	that.once.Do(func() {
		close(that.done)
		_ = that.ws.Close()
	})
}

// writePump drains the send queue onto the socket and keeps the peer alive
// with periodic pings. Runs in its own goroutine per connection.
func (that *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.close()
	}()

	for {
		select {
		case raw := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-that.done:
			return
		}
	}
}
