package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/trickypr/sync-party/config"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/member"
	"github.com/trickypr/sync-party/internal/party"
)

func fetchPlaylist(apiBase string) ([]party.MediaItem, error) {
	resp, err := http.Get(apiBase + "/media/items")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		MediaItems []party.MediaItem `json:"mediaItems"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return out.MediaItems, nil
}

func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "websocket endpoint")
	apiBase := flag.String("api", "http://localhost:8080", "REST base URL")
	partyID := flag.String("party", "", "party to join")
	userID := flag.String("user", "", "member id (random when empty)")
	username := flag.String("username", "", "display name")
	flag.Parse()

	if *partyID == "" {
		logger.Log.Error("A party id is required.")
		os.Exit(1)
	}

	id := *userID
	if id == "" {
		id = uuid.NewString()
	}

	name := *username
	if name == "" {
		name = "Guest_" + id
	}

	playlist, err := fetchPlaylist(*apiBase)
	if err != nil {
		logger.Log.Error("Failed to fetch playlist.", "err", err)
		os.Exit(1)
	}

	m, err := member.Dial(member.Options{
		ServerURL: *serverURL,
		APIBase:   *apiBase,

		PartyID:  *partyID,
		UserID:   id,
		Username: name,

		Playlist: playlist,

		SyncStatusIntervalDelay: config.Conf.SyncStatusIntervalDelay,
		SyncStatusTolerance:     config.Conf.SyncStatusIntervalTolerance,
	})
	if err != nil {
		logger.Log.Error("Failed to connect.", "err", err)
		os.Exit(1)
	}

	logger.Log.Info("Joined party.", "party", *partyID, "member", id)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Log.Error("Member stopped.", "err", err)
	}
}
