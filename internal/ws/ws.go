package ws

import (
	"github.com/gofiber/contrib/websocket"
)

// Serve builds the client, runs setup to register its handlers, then starts
// the pumps. Registration finishes before the first read, so the handler map
// is never written concurrently with dispatch.
func Serve(c *websocket.Conn, setup func(*Client)) *Client {
	client := NewClient(c)
	if setup != nil {
		setup(client)
	}

	go client.writePump()
	go client.readPump()

	return client
}
