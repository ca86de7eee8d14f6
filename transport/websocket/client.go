package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type client struct {
	id   string
	conn *websocket.Conn

	// roomID is guarded by the hub lock.
	roomID string

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// enqueue reports false when the send buffer is full.
func (that *client) enqueue(data []byte) bool {
	select {
	case <-that.done:
		return true
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

// close stops the write pump, which closes the socket and ends the read loop.
func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// writePump is the only writer of the socket.
func (that *client) writePump(writeWait, pingPeriod time.Duration) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-that.done:
			_ = that.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return nil
		}
	}
}
