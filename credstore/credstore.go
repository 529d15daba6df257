// Package credstore keeps the clipboard server password in the OS keyring so
// it never has to be written to the config file.
package credstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const service = "pasty"

// ErrNotFound is returned when no password is stored for a user.
var ErrNotFound = fmt.Errorf("no stored password: %w", keyring.ErrNotFound)

func Get(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	password, err := keyring.Get(service, username)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("OS keyring is not available: %w", err)
	}

	return password, nil
}

func Set(username, password string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(service, username, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}

	return nil
}

// Delete removes the stored password. Deleting a missing entry is not an error.
func Delete(username string) error {
	err := keyring.Delete(service, username)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}

	return nil
}
