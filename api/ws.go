package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/trickypr/sync-party/internal/clock"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/ws"
)

// Websocket handles one member connection. joined and userID are only ever
// touched on the client's pump goroutine: the handlers run there, and so does
// the disconnect cleanup, after the last handler of the connection.
func Websocket(registry *party.Registry) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		var joined *party.Party
		var userID string

		client := ws.Serve(c, func(client *ws.Client) {
			client.OnDisconnect(func() {
				if joined != nil {
					joined.Leave(userID)
				}
			})

			client.Once("connection", func(msg any) {
				client.Emit("connected", ws.Connected{ServerTime: clock.Now()})

				client.On("joinParty", func(msg any) {
					join, ok := decodeJoinParty(msg)
					if !ok {
						logger.Log.Debug("Client failed to join. Join info is not a structure.")
						return
					}

					// Switching party or identity leaves the old membership
					// behind; it must not outlive this join.
					if joined != nil && (joined.ID() != join.PartyID || userID != join.UserID) {
						joined.Leave(userID)
					}

					userID = join.UserID
					joined = registry.Join(join, client)
				})

				client.On("playWish", func(msg any) {
					if joined == nil {
						return
					}

					wish, ok := decodePlayWish(msg)
					if !ok {
						logger.Log.Debug("Discarded play wish. Wish is not a structure.")
						return
					}

					joined.SubmitWish(wish)
				})

				client.On("syncStatus", func(msg any) {
					if joined == nil {
						return
					}

					status, ok := decodeSyncStatus(msg)
					if !ok {
						logger.Log.Debug("Discarded sync status. Status is not a structure.")
						return
					}

					joined.SubmitStatus(status)
				})

				client.On("partyUpdate", func(msg any) {
					if joined == nil {
						return
					}

					update, ok := msg.(map[string]any)
					if !ok {
						return
					}

					partyID, ok := update["partyId"].(string)
					if !ok {
						return
					}

					joined.NotifyUpdate(party.PartyUpdate{PartyID: partyID})
				})
			})
		})

		<-client.Disconnected
	}
}

func decodeJoinParty(msg any) (party.JoinParty, bool) {
	data, ok := msg.(map[string]any)
	if !ok {
		return party.JoinParty{}, false
	}

	userID, ok := data["userId"].(string)
	if !ok {
		return party.JoinParty{}, false
	}

	partyID, ok := data["partyId"].(string)
	if !ok {
		return party.JoinParty{}, false
	}

	timestamp, ok := data["timestamp"].(float64)
	if !ok {
		return party.JoinParty{}, false
	}

	join := party.JoinParty{
		UserID:    userID,
		PartyID:   partyID,
		Timestamp: int64(timestamp),
	}

	if username, ok := data["username"].(string); ok {
		join.Username = username
	}

	return join, true
}

func decodePlayWish(msg any) (party.PlayWish, bool) {
	data, ok := msg.(map[string]any)
	if !ok {
		return party.PlayWish{}, false
	}

	partyID, ok := data["partyId"].(string)
	if !ok {
		return party.PlayWish{}, false
	}

	issuer, ok := data["issuer"].(string)
	if !ok {
		return party.PlayWish{}, false
	}

	mediaItemID, ok := data["mediaItemId"].(string)
	if !ok {
		return party.PlayWish{}, false
	}

	mediaType, ok := data["type"].(string)
	if !ok {
		return party.PlayWish{}, false
	}

	isPlaying, ok := data["isPlaying"].(bool)
	if !ok {
		return party.PlayWish{}, false
	}

	position, ok := data["position"].(float64)
	if !ok {
		return party.PlayWish{}, false
	}

	timestamp, ok := data["timestamp"].(float64)
	if !ok {
		return party.PlayWish{}, false
	}

	wish := party.PlayWish{
		PartyID:     partyID,
		Issuer:      issuer,
		MediaItemID: mediaItemID,
		Type:        party.MediaType(mediaType),
		IsPlaying:   isPlaying,
		Position:    position,
		Timestamp:   int64(timestamp),
	}

	if direction, ok := data["direction"].(string); ok {
		wish.Direction = party.SeekDirection(direction)
	}

	return wish, true
}

func decodeSyncStatus(msg any) (party.SyncStatusOutgoing, bool) {
	data, ok := msg.(map[string]any)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	partyID, ok := data["partyId"].(string)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	userID, ok := data["userId"].(string)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	timestamp, ok := data["timestamp"].(float64)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	position, ok := data["position"].(float64)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	isPlaying, ok := data["isPlaying"].(bool)
	if !ok {
		return party.SyncStatusOutgoing{}, false
	}

	return party.SyncStatusOutgoing{
		PartyID:   partyID,
		UserID:    userID,
		Timestamp: int64(timestamp),
		Position:  position,
		IsPlaying: isPlaying,
	}, true
}
