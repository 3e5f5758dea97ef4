package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trickypr/sync-party/config"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/storage"
)

const usage = `usage: admin <command> [args]

commands:
  create-user <username> <role> <password>
  delete-user <username>
  list-users
  change-password <username> <new-password>
  add-file <path> <name> <owner-username>
  add-web <url> <name> <owner-username>
`

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func requireArgs(n int) []string {
	args := os.Args[2:]
	if len(args) != n {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	return args
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := storage.Open(config.Conf.DatabasePath)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	switch os.Args[1] {
	case "create-user":
		args := requireArgs(3)
		createUser(store, args[0], args[1], args[2])
	case "delete-user":
		args := requireArgs(1)
		if err := store.DeleteUser(args[0]); err != nil {
			fail(err)
		}
		fmt.Printf("User deleted: %s\n", args[0])
	case "list-users":
		users, err := store.ListUsers()
		if err != nil {
			fail(err)
		}
		if len(users) == 0 {
			fail(fmt.Errorf("no users found"))
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Username, u.Role)
		}
	case "change-password":
		args := requireArgs(2)
		hash, err := bcrypt.GenerateFromPassword([]byte(args[1]), 10)
		if err != nil {
			fail(err)
		}
		if err := store.UpdatePassword(args[0], string(hash)); err != nil {
			fail(err)
		}
		fmt.Printf("Password changed for %s\n", args[0])
	case "add-file":
		args := requireArgs(3)
		addItem(store, party.MediaTypeFile, args[0], args[1], args[2])
	case "add-web":
		args := requireArgs(3)
		addItem(store, party.MediaTypeWeb, args[0], args[1], args[2])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createUser(store *storage.Store, username, role, password string) {
	if _, err := store.GetUserByUsername(username); err == nil {
		fail(fmt.Errorf("user already exists: %s", username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		fail(err)
	}

	user := storage.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := store.CreateUser(user); err != nil {
		fail(err)
	}

	fmt.Printf("User created: %s (id: %s)\n", user.Username, user.ID)
}

func addItem(store *storage.Store, mediaType party.MediaType, url, name, ownerName string) {
	owner, err := store.GetUserByUsername(ownerName)
	if err != nil {
		fail(fmt.Errorf("owner %s does not exist", ownerName))
	}

	if mediaType == party.MediaTypeFile {
		if _, err := os.Stat(url); err != nil {
			fail(fmt.Errorf("file %s does not exist", url))
		}
		url = filepath.Clean(url)
	}

	item := storage.MediaItem{
		MediaItem: party.MediaItem{
			ID:   uuid.NewString(),
			Type: mediaType,
			URL:  url,
			Name: name,
		},
		Owner: owner.ID,
	}
	if err := store.SaveMediaItem(item); err != nil {
		fail(err)
	}

	fmt.Printf("'%s' (%s) was added with owner '%s' (%s)\n", item.Name, item.ID, owner.Username, owner.ID)
}
