package member

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trickypr/sync-party/internal/party"
)

// metadataClient is the played-flag collaborator, backed by the REST
// surface. After a successful write the member relays a partyUpdate so the
// rest of the party refetches.
type metadataClient struct {
	member *Member
}

func (c *metadataClient) UpdatePlayedFlag(partyID, mediaItemID string) error {
	body, err := json.Marshal(map[string]any{
		"partyId":     partyID,
		"mediaItemId": mediaItemID,
		"played":      true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, c.member.opts.APIBase+"/partyMetadata", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("metadata update failed: %s", out.Msg)
	}

	c.member.Emit("partyUpdate", party.PartyUpdate{PartyID: partyID})
	return nil
}

// refreshPlaylist refetches the playlist after a partyUpdate notification.
func (m *Member) refreshPlaylist() {
	resp, err := http.Get(m.opts.APIBase + "/media/items")
	if err != nil {
		m.report.Error("Could not refetch playlist: " + err.Error())
		return
	}
	defer resp.Body.Close()

	var out struct {
		Success    bool              `json:"success"`
		MediaItems []party.MediaItem `json:"mediaItems"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		m.report.Error("Could not refetch playlist: " + err.Error())
		return
	}
	if !out.Success {
		return
	}

	m.machine.SetPlaylist(out.MediaItems)
}
