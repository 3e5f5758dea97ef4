package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/storage"
)

func MediaItems(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.ListMediaItems()
		if err != nil {
			logger.Log.Error("Failed to list media items.", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"msg":     "error",
			})
		}

		items := make([]party.MediaItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, row.MediaItem)
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"msg":        "fetchingSuccessful",
			"mediaItems": items,
		})
	}
}
