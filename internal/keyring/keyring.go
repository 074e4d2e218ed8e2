// Package keyring keeps the keeppass master password in the OS keyring.
// Entries are keyed by vault id, so two vaults on one machine do not share
// a password.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "keeppass"

// ErrNotStored is returned when the vault has no keyring entry
var ErrNotStored = errors.New("no password in keyring")

// SavePassword stores the master password of a vault
func SavePassword(vaultID string, password []byte) error {
	return keyring.Set(serviceName, vaultID, string(password))
}

// GetPassword returns the stored master password of a vault.
// The caller owns the returned slice and should clear it.
func GetPassword(vaultID string) ([]byte, error) {
	password, err := keyring.Get(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, err
	}
	return []byte(password), nil
}

// DeletePassword removes the stored master password of a vault
func DeletePassword(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotStored
	}
	return err
}

// HasPassword reports whether the vault has a keyring entry
func HasPassword(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
