package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/turnkey/internal/constants"
)

// KeyringTarget is the --config value that selects the stored connection string
const KeyringTarget = "keyring"

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a storage target came from
type Source string

const (
	SourceFlag        Source = "flag"
	SourceEnvironment Source = "environment"
	SourceKeyring     Source = "keyring"
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// ResolveTarget picks the storage target. The connection string environment
// variable wins, then the keyring when config is KeyringTarget, then config
// itself (a file path or a password-free connection string).
func ResolveTarget(config string) (string, Source, error) {
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		return env, SourceEnvironment, nil
	}
	if config == KeyringTarget {
		connStr, err := GetConnectionString()
		if err != nil {
			return "", SourceKeyring, err
		}
		return connStr, SourceKeyring, nil
	}
	return config, SourceFlag, nil
}

// Mask hides the password of a URL-style connection string for display.
func Mask(connStr string) string {
	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok {
		return connStr
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return connStr
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return connStr
	}
	return scheme + "://" + user + ":****@" + host
}
