package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trickypr/sync-party/internal/storage"
)

func Register(app *fiber.App, store *storage.Store) {
	app.Get("/media/items", MediaItems(store))
	app.Get("/partyMetadata/:partyId", PartyMetadata(store))
	app.Put("/partyMetadata", UpdatePartyMetadata(store))
}
