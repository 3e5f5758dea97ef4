package party

// MediaType distinguishes locally served files from web sources.
type MediaType string

const (
	MediaTypeFile MediaType = "file"
	MediaTypeWeb  MediaType = "web"
)

// IssuerSystem marks wishes produced by the engine itself, e.g. the
// auto-advance to the next playlist item. No attribution is shown for them.
const IssuerSystem = "system"

type SeekDirection string

const (
	SeekLeft  SeekDirection = "left"
	SeekRight SeekDirection = "right"
)

type MediaItem struct {
	ID   string    `json:"id"`
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
	Name string    `json:"name"`
}

// PlayWish is a member's requested change to playback. Position is a
// fraction of the item duration, which keeps the protocol duration-agnostic.
type PlayWish struct {
	PartyID     string        `json:"partyId"`
	Issuer      string        `json:"issuer"`
	MediaItemID string        `json:"mediaItemId"`
	Type        MediaType     `json:"type"`
	IsPlaying   bool          `json:"isPlaying"`
	Position    float64       `json:"position"`
	Timestamp   int64         `json:"timestamp"`
	Direction   SeekDirection `json:"direction,omitempty"`
}

// PlayOrder is the authoritative playback directive for a party. Exactly one
// is current per party; a newer order always replaces the prior one wholesale.
type PlayOrder PlayWish

type JoinParty struct {
	UserID    string `json:"userId"`
	PartyID   string `json:"partyId"`
	Username  string `json:"username,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type SyncStatusOutgoing struct {
	PartyID   string  `json:"partyId"`
	UserID    string  `json:"userId"`
	Timestamp int64   `json:"timestamp"`
	Position  float64 `json:"position"`
	IsPlaying bool    `json:"isPlaying"`
}

// SyncStatusSample is one member's latest heartbeat as fanned out by the
// broker, with that member's measured clock offset attached.
type SyncStatusSample struct {
	Timestamp        int64   `json:"timestamp"`
	Position         float64 `json:"position"`
	IsPlaying        bool    `json:"isPlaying"`
	ServerTimeOffset int64   `json:"serverTimeOffset"`
}

type SyncStatusIncoming map[string]SyncStatusSample

type MemberState struct {
	Online           bool  `json:"online"`
	ServerTimeOffset int64 `json:"serverTimeOffset"`
}

type MemberStatus map[string]MemberState

// SyncStatusReceiveMember is the per-peer drift readout, one entry for every
// party member other than self. Delta is seconds, positive when the peer is
// ahead.
type SyncStatusReceiveMember struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Delta    float64 `json:"delta"`
}

type ClientPartyMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PartyUpdate struct {
	PartyID string `json:"partyId"`
}
