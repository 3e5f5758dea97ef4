package ws

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// socket is the subset of the websocket connection the pumps drive. Tests
// substitute their own.
type socket interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

type Client struct {
	id   string
	conn socket

	send chan Message
	recv chan Message

	handlers   map[string]func(msg any)
	disconnect func()

	Disconnected chan bool
}

func NewClient(conn *websocket.Conn) *Client {
	return newClient(conn)
}

func newClient(conn socket) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,

		send: make(chan Message, MaxBufferSize),
		recv: make(chan Message, MaxBufferSize),

		handlers: make(map[string]func(msg any)),

		Disconnected: make(chan bool),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()

		if c.disconnect != nil {
			c.disconnect()
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(ReplyWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case msg := <-c.recv:
			c.handle(msg)
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(ReplyWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.Disconnected:
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		close(c.Disconnected)
	}()

	c.conn.SetReadLimit(int64(MaxBufferSize))
	c.conn.SetReadDeadline(time.Now().Add(ResponseWait))
	c.conn.SetPongHandler(func(_ string) error {
		c.conn.SetReadDeadline(time.Now().Add(ResponseWait))
		return nil
	})

	for {
		msg := new(Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return
		}

		c.recv <- *msg
	}
}

// handle runs on the write pump goroutine, so handlers never race each other
// or outgoing writes.
func (c *Client) handle(msg Message) {
	if handler := c.handlers[msg.Event]; handler != nil {
		handler(msg.Data)
	}
}

// On registers the handler for an event, replacing any previous one. Off
// before On is the re-registration discipline; replacement makes a bare On
// idempotent as well, so a reconnect can never stack duplicate handlers.
func (c *Client) On(event string, handler func(msg any)) {
	c.handlers[event] = handler
}

func (c *Client) Off(event string) {
	delete(c.handlers, event)
}

func (c *Client) Once(event string, handler func(msg any)) {
	c.handlers[event] = func(msg any) {
		c.Off(event)
		handler(msg)
	}
}

// OnDisconnect registers the cleanup run when the write pump exits, on the
// pump goroutine itself. It therefore observes every state change the
// handlers made, including ones processed in the same select round the
// connection died in. Register before the pumps start.
func (c *Client) OnDisconnect(fn func()) {
	c.disconnect = fn
}

func (c *Client) Emit(event string, msg any) {
	c.send <- Message{
		Event: event,
		Data:  msg,
	}
}
