package ws

import "time"

const (
	MaxBufferSize = 1024

	// Time allowed to write a message to the peer.
	ReplyWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	ResponseWait = 60 * time.Second

	// Send pings with this period. Must be less than ResponseWait.
	PingInterval = 30 * time.Second
)

// Message is the envelope every event travels in, both directions.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Connected is the handshake payload; members establish their server time
// offset from it.
type Connected struct {
	ServerTime int64 `json:"serverTime"`
}
