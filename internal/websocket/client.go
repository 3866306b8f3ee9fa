package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one change-feed subscriber. The feed only flows to the client:
// inbound data frames are dropped and a close frame ends the session.
type Client struct {
	hub    *Hub
	conn   *ws.Conn
	remote string
	send   chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn, remote string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		remote: remote,
		send:   make(chan []byte, sendBufferSize),
	}
}

// Run streams notices to the peer until it leaves, a write fails or ctx
// ends. The client is registered for exactly that long.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx = c.conn.CloseRead(ctx)
	keepAlive := time.NewTicker(pingInterval)
	defer keepAlive.Stop()

	for {
		select {
		case notice, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "change feed closed")
				return
			}
			if err := c.deliver(ctx, notice); err != nil {
				c.hub.logger.Debug("change feed write failed", "remote", c.remote, "error", err)
				return
			}
		case <-keepAlive.C:
			if err := c.conn.Ping(ctx); err != nil {
				c.hub.logger.Debug("change feed ping failed", "remote", c.remote, "error", err)
				return
			}
		case <-ctx.Done():
			c.conn.Close(ws.StatusNormalClosure, "")
			return
		}
	}
}

func (c *Client) deliver(ctx context.Context, notice []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, notice)
}
