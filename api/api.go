package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/trickypr/sync-party/api/rest"
	"github.com/trickypr/sync-party/handlers"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/storage"
	"github.com/trickypr/sync-party/internal/ws"
)

func Register(app *fiber.App, registry *party.Registry, store *storage.Store) {
	app.Use("/ws", handlers.WSUpgrader)
	app.Get("/ws", websocket.New(Websocket(registry), websocket.Config{
		ReadBufferSize:  ws.MaxBufferSize,
		WriteBufferSize: ws.MaxBufferSize,
	}))

	rest.Register(app, store)
}
