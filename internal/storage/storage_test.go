package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/trickypr/sync-party/internal/party"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "sync-party.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSchemaIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	if err := store.EnsureSchema(); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := openTestStore(t)

	user := User{ID: "u1", Username: "alice", Password: "$2a$10$hash", Role: "admin"}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := store.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got != user {
		t.Fatalf("got %+v, want %+v", got, user)
	}

	if _, err := store.GetUserByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user: err = %v, want ErrNotFound", err)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateUser(User{ID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := store.CreateUser(User{ID: "u2", Username: "alice"}); err == nil {
		t.Fatalf("duplicate username accepted")
	}
}

func TestDeleteAndUpdateReportMissingUsers(t *testing.T) {
	store := openTestStore(t)

	if err := store.DeleteUser("nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteUser: err = %v, want ErrNotFound", err)
	}
	if err := store.UpdatePassword("nobody", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePassword: err = %v, want ErrNotFound", err)
	}

	if err := store.CreateUser(User{ID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := store.UpdatePassword("alice", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if err := store.DeleteUser("alice"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	users, err := store.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestMediaItemUpsert(t *testing.T) {
	store := openTestStore(t)

	item := MediaItem{
		MediaItem: party.MediaItem{ID: "m1", Type: party.MediaTypeWeb, URL: "https://vimeo.com/1", Name: "first"},
		Owner:     "u1",
	}
	if err := store.SaveMediaItem(item); err != nil {
		t.Fatalf("SaveMediaItem: %v", err)
	}

	item.Name = "renamed"
	if err := store.SaveMediaItem(item); err != nil {
		t.Fatalf("SaveMediaItem upsert: %v", err)
	}

	got, err := store.GetMediaItem("m1")
	if err != nil {
		t.Fatalf("GetMediaItem: %v", err)
	}
	if got.Name != "renamed" || got.Type != party.MediaTypeWeb {
		t.Fatalf("unexpected item: %+v", got)
	}

	items, err := store.ListMediaItems()
	if err != nil {
		t.Fatalf("ListMediaItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}

	if _, err := store.GetMediaItem("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item: err = %v, want ErrNotFound", err)
	}
}

func TestPlayedFlagsPerParty(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetPlayedFlag("p1", "m1", true); err != nil {
		t.Fatalf("SetPlayedFlag: %v", err)
	}
	if err := store.SetPlayedFlag("p1", "m2", true); err != nil {
		t.Fatalf("SetPlayedFlag: %v", err)
	}
	if err := store.SetPlayedFlag("p1", "m2", false); err != nil {
		t.Fatalf("SetPlayedFlag overwrite: %v", err)
	}
	if err := store.SetPlayedFlag("p2", "m1", true); err != nil {
		t.Fatalf("SetPlayedFlag other party: %v", err)
	}

	played, err := store.PlayedFlags("p1")
	if err != nil {
		t.Fatalf("PlayedFlags: %v", err)
	}

	if len(played) != 2 || !played["m1"] || played["m2"] {
		t.Fatalf("unexpected flags: %v", played)
	}
}
