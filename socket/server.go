package socket

import (
	"log"
	"net/http"

	"feishu_card_server/models"

	socketio "github.com/googollee/go-socket.io"
)

const interactionsRoom = "interactions"

// Feed pushes stored interaction records to connected operator clients
type Feed struct {
	server *socketio.Server
}

// NewFeed initializes the Socket.IO server for the live interaction feed
func NewFeed() *Feed {
	server := socketio.NewServer(nil)

	// Every client joins the interactions room on connect
	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		c.Join(interactionsRoom)
		return nil
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("⚠️ Socket error:", err)
	})

	return &Feed{server: server}
}

// PublishInteraction broadcasts a stored record to all feed subscribers.
// Fire and forget: only currently connected clients receive it.
func (f *Feed) PublishInteraction(record models.InteractionRecord) {
	f.server.BroadcastToRoom("/", interactionsRoom, "interactionRecorded", record)
}

// Handler exposes the server for mounting under /socket.io/
func (f *Feed) Handler() http.Handler {
	return f.server
}

// Serve runs the Socket.IO event loop until Close is called
func (f *Feed) Serve() error {
	return f.server.Serve()
}

// Close stops the Socket.IO server
func (f *Feed) Close() error {
	return f.server.Close()
}
