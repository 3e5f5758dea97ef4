package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/storage"
)

type updateMetadataRequest struct {
	PartyID     string `json:"partyId"`
	MediaItemID string `json:"mediaItemId"`
	Played      bool   `json:"played"`
}

func PartyMetadata(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		played, err := store.PlayedFlags(c.Params("partyId"))
		if err != nil {
			logger.Log.Error("Failed to fetch party metadata.", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"msg":     "error",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"msg":     "fetchingSuccessful",
			"played":  played,
		})
	}
}

// UpdatePartyMetadata persists a played flag. The caller then emits a
// partyUpdate over its socket so the rest of the party refetches.
func UpdatePartyMetadata(store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(updateMetadataRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"msg":     "invalidInput",
			})
		}

		if req.PartyID == "" || req.MediaItemID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"msg":     "invalidInput",
			})
		}

		if err := store.SetPlayedFlag(req.PartyID, req.MediaItemID, req.Played); err != nil {
			logger.Log.Error("Failed to update played flag.", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"msg":     "error",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"msg":     "metadataUpdateSuccessful",
		})
	}
}
