package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/trickypr/sync-party/api"
	"github.com/trickypr/sync-party/config"
	"github.com/trickypr/sync-party/internal/clock"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/storage"
)

func main() {
	app := fiber.New(fiber.Config{
		Immutable: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Conf.AllowOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	store, err := storage.Open(config.Conf.DatabasePath)
	if err != nil {
		logger.Log.Error("Failed to open database.", "err", err)
		return
	}
	defer store.Close()

	registry := party.NewRegistry(clock.Now)

	api.Register(app, registry, store)

	logger.Log.Info("Listening.", "port", config.Conf.Port)
	if err := app.Listen(":" + config.Conf.Port); err != nil {
		logger.Log.Error("Server stopped.", "err", err)
	}
}
