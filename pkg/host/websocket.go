package host

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/navstack-dev/navstack/pkg/routeinfo"
)

const (
	// writeWait bounds a single message write.
	writeWait = 10 * time.Second

	// pongWait bounds the silence tolerated before dropping a client.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound client messages.
	maxMessageSize = 16 * 1024

	// clientSendBuffer is the per-client outbound queue; clients that fall
	// behind are disconnected rather than blocking the engine.
	clientSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// client is one connected hosting-environment peer.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (h *Host) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	h.addClient(c)
	h.logger.Info("client connected", "remote", conn.RemoteAddr())

	go h.writeLoop(c)

	// Greet the client with the current stack before processing events.
	h.mu.Lock()
	msg := h.stackMessage()
	h.mu.Unlock()
	if frame, err := EncodeMessage(msg); err == nil {
		c.enqueue(frame)
	}

	h.readLoop(r, c)
}

// readLoop reads client messages until the connection closes. It blocks, so
// handleWS runs it on the request goroutine.
func (h *Host) readLoop(r *http.Request, c *client) {
	defer h.removeClient(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.logger.Error("websocket read error", "error", err)
			}
			return
		}

		msg, err := DecodeMessage(raw)
		if err != nil {
			h.logger.Error("message decode error", "error", err)
			h.sendError(c, err.Error())
			continue
		}

		switch msg.Type {
		case MessageRoute:
			ri := routeinfo.RouteInformation{Location: msg.Location, State: msg.State}
			if err := h.SetNewRoute(r.Context(), ri); err != nil {
				h.logger.Error("route reconciliation failed", "location", msg.Location, "error", err)
				h.sendError(c, err.Error())
			}

		case MessagePop:
			accepted := h.OnPlatformPop(r.Context(), msg.Name, msg.Result)
			reply, err := EncodeMessage(Message{
				Type:     MessagePopResult,
				Name:     msg.Name,
				Accepted: accepted,
			})
			if err == nil {
				c.enqueue(reply)
			}

		default:
			h.logger.Warn("unexpected client message", "type", msg.Type)
		}
	}
}

// writeLoop drains the client's send queue and keeps the connection alive
// with pings.
func (h *Host) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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

// enqueue queues a frame without blocking; slow clients drop frames.
func (c *client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (h *Host) addClient(c *client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Host) removeClient(c *client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Host) sendError(c *client, message string) {
	frame, err := EncodeMessage(Message{Type: MessageError, Error: message})
	if err != nil {
		return
	}
	c.enqueue(frame)
}

// stackMessage builds the stack snapshot message. The caller must hold
// h.mu, or be running inside a delegate change callback (which executes
// under it).
func (h *Host) stackMessage() Message {
	pages := h.delegate.Pages()
	infos := make([]PageInfo, len(pages))
	for i, page := range pages {
		infos[i] = PageInfo{
			Name:     page.Name,
			Location: routeinfo.FromDestination(page.Destination).Location,
		}
	}
	return Message{
		Type:     MessageStack,
		Pages:    infos,
		CanClose: h.delegate.CanClose(),
	}
}

// broadcastStack pushes the current stack to every connected client. It is
// registered as the delegate's change listener, so it runs synchronously on
// every successful mutation.
func (h *Host) broadcastStack() {
	frame, err := EncodeMessage(h.stackMessage())
	if err != nil {
		h.logger.Error("encoding stack broadcast", "error", err)
		return
	}

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for c := range h.clients {
		if !c.enqueue(frame) {
			h.logger.Warn("client send queue full, dropping stack update")
		}
	}
}
