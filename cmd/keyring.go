package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/keyring"
)

// KeyringSave saves the master password to the OS keyring
func KeyringSave(cfg *config.Config) {
	keeper := newKeeper(cfg)

	// Always ask, a stale keyring entry must not verify itself
	password, err := prompter.ReadPassword("Enter master password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	if err := keeper.VerifyPassword(password); err != nil {
		HandleError(err)
	}

	vaultID, err := keeper.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(vaultID, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the master password from the OS keyring
func KeyringDelete(cfg *config.Config) {
	keeper := newKeeper(cfg)

	vaultID, err := keeper.GetVaultID()
	if err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(vaultID); err != nil {
		if errors.Is(err, keyring.ErrNotStored) {
			fmt.Println("No password stored in keyring")
			return
		}
		fmt.Fprintf(os.Stderr, "Error: failed to remove from keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a master password is stored in the keyring
func KeyringStatus(cfg *config.Config) {
	keeper := newKeeper(cfg)

	vaultID, err := keeper.GetVaultID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
