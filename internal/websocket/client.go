// internal/websocket/client.go
package websocket

import (
	"context"
	"sync"
	"time"

	wstypes "notifyme-service/internal/domain/websocket"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBufferSize = 256
)

// Client is the gateway for one live connection. It joins the global group
// on connect, plus its own user group when the connection is authenticated,
// and leaves everything exactly once on teardown.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan *wstypes.Event
	id     string
	userID int64 // 0 for anonymous connections
	logger *zap.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan *wstypes.Event, sendBufferSize),
		id:     ulid.Make().String(),
		userID: userID,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Client) ID() string { return c.id }

// UserID returns the authenticated user id, 0 when anonymous.
func (c *Client) UserID() int64 { return c.userID }

// Start registers the client with the hub and runs its pumps.
func (c *Client) Start() {
	c.hub.Join(c, wstypes.GroupAll)
	if c.userID > 0 {
		c.hub.Join(c, wstypes.UserGroup(c.userID))
	}

	go c.writePump()
	go c.readPump()
}

// Send enqueues an event for delivery. Called by the hub's fan-out; it never
// blocks. A full buffer means the client stopped draining and is reported as
// undeliverable so the hub drops it.
func (c *Client) Send(evt *wstypes.Event) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- evt:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// readPump handles inbound client messages: each one is re-broadcast to the
// global group and acknowledged back to the sender.
func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		inbound, err := wstypes.ParseInbound(data)
		if err != nil {
			c.logger.Warn("discarding malformed inbound message",
				zap.String("client_id", c.id),
				zap.Error(err),
			)
			continue
		}

		evt, err := wstypes.NewEvent(wstypes.KindAnnouncement, inbound.Message, inbound.NotificationType)
		if err != nil {
			continue
		}
		c.hub.Publish(wstypes.GroupAll, evt)

		// Acknowledge receipt to the sender only.
		ack := &wstypes.Event{
			Kind:    wstypes.KindAnnouncement,
			Message: inbound.Message,
			Status:  "Received",
		}
		if err := c.Send(ack); err != nil {
			return
		}
	}
}

// writePump drains the send channel to the wire in FIFO order and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case evt := <-c.send:
			data, err := evt.ToJSON()
			if err != nil {
				c.logger.Error("failed to marshal event", zap.Error(err))
				continue
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close tears the client down: leave every group, release the identity and
// close the transport. Safe to call any number of times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.Remove(c)
		c.cancel()
		c.conn.Close()
	})
}
