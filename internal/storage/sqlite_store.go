package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/trickypr/sync-party/internal/party"
)

var ErrNotFound = errors.New("storage: not found")

func (s *Store) CreateUser(u User) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}

	_, err := s.db.Exec(`
		INSERT INTO users (id, username, password, role)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Username, u.Password, u.Role)
	return err
}

func (s *Store) GetUserByUsername(username string) (User, error) {
	var u User
	err := s.db.QueryRow(`
		SELECT id, username, password, role
		FROM users
		WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) ListUsers() ([]User, error) {
	rows, err := s.db.Query(`
		SELECT id, username, password, role
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Store) DeleteUser(username string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePassword(username, passwordHash string) error {
	res, err := s.db.Exec(`
		UPDATE users SET password = ? WHERE username = ?
	`, passwordHash, username)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SaveMediaItem(item MediaItem) error {
	_, err := s.db.Exec(`
		INSERT INTO media_items (id, type, owner, name, url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type=excluded.type,
			owner=excluded.owner,
			name=excluded.name,
			url=excluded.url
	`, item.ID, string(item.Type), item.Owner, item.Name, item.URL)
	return err
}

func (s *Store) GetMediaItem(id string) (MediaItem, error) {
	var (
		item      MediaItem
		mediaType string
	)
	err := s.db.QueryRow(`
		SELECT id, type, owner, name, url
		FROM media_items
		WHERE id = ?
	`, id).Scan(&item.ID, &mediaType, &item.Owner, &item.Name, &item.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return MediaItem{}, ErrNotFound
	}
	item.Type = party.MediaType(mediaType)
	return item, err
}

func (s *Store) ListMediaItems() ([]MediaItem, error) {
	rows, err := s.db.Query(`
		SELECT id, type, owner, name, url
		FROM media_items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MediaItem
	for rows.Next() {
		var (
			item      MediaItem
			mediaType string
		)
		if err := rows.Scan(&item.ID, &mediaType, &item.Owner, &item.Name, &item.URL); err != nil {
			return nil, err
		}
		item.Type = party.MediaType(mediaType)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Store) SetPlayedFlag(partyID, mediaItemID string, played bool) error {
	flag := 0
	if played {
		flag = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO party_played (party_id, media_item_id, played)
		VALUES (?, ?, ?)
		ON CONFLICT(party_id, media_item_id) DO UPDATE SET
			played=excluded.played
	`, partyID, mediaItemID, flag)
	return err
}

func (s *Store) PlayedFlags(partyID string) (map[string]bool, error) {
	rows, err := s.db.Query(`
		SELECT media_item_id, played
		FROM party_played
		WHERE party_id = ?
	`, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	played := make(map[string]bool)
	for rows.Next() {
		var (
			id   string
			flag int
		)
		if err := rows.Scan(&id, &flag); err != nil {
			return nil, err
		}
		played[id] = flag != 0
	}

	return played, rows.Err()
}
