package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/core"
	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/keyring"
	"github.com/illarion/keeppass/internal/store"
)

// prompter is shared so buffered stdin is never read by two readers
var prompter = core.NewPrompter(os.Stdin, os.Stdout)

// PasswordSource tells where the master password came from
type PasswordSource int

const (
	SourceEnv PasswordSource = iota
	SourceKeyring
	SourcePrompt
)

func newKeeper(cfg *config.Config) *core.Keeper {
	return core.New(cfg.CredentialsFile, cfg.MetaDB)
}

// GetPasswordWithRetry finds the master password and checks it with verify.
// It tries KEEPPASS_PASSWORD, then the keyring, then the terminal. A keyring
// entry that no longer matches is removed before prompting.
// The caller is responsible for calling crypto.ClearBytes on the returned password.
func GetPasswordWithRetry(cfg *config.Config, prompt, vaultID string, verify func([]byte) error) ([]byte, PasswordSource, error) {
	if cfg.MasterPassword != nil {
		password := append([]byte(nil), cfg.MasterPassword...)
		if err := verify(password); err != nil {
			crypto.ClearBytes(password)
			return nil, SourceEnv, err
		}
		return password, SourceEnv, nil
	}

	if cfg.UseKeyring && vaultID != "" {
		if password, err := keyring.GetPassword(vaultID); err == nil {
			err := verify(password)
			if err == nil {
				return password, SourceKeyring, nil
			}
			crypto.ClearBytes(password)
			if !errors.Is(err, core.ErrWrongPassword) {
				return nil, SourceKeyring, err
			}
			fmt.Fprintln(os.Stderr, "warning: password in keyring is out of date, removing it")
			_ = keyring.DeletePassword(vaultID)
		}
	}

	password, err := prompter.ReadPassword(prompt)
	if err != nil {
		return nil, SourcePrompt, err
	}
	if err := verify(password); err != nil {
		crypto.ClearBytes(password)
		return nil, SourcePrompt, err
	}
	return password, SourcePrompt, nil
}

// OfferToSavePassword asks whether a typed password should go to the keyring
func OfferToSavePassword(cfg *config.Config, vaultID string, password []byte) {
	if !cfg.UseKeyring || vaultID == "" || keyring.HasPassword(vaultID) {
		return
	}
	if !prompter.Confirm("Save master password to keyring? [Y/n]: ") {
		return
	}
	if err := keyring.SavePassword(vaultID, password); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save to keyring: %s\n", err)
		return
	}
	fmt.Println("Password saved to keyring")
}

// unlock passes the master password gate and opens the credential store.
// It exits the process when the gate refuses.
func unlock(cfg *config.Config) (*core.Keeper, *store.Store) {
	keeper := newKeeper(cfg)
	if !keeper.IsInitialized() {
		HandleError(core.ErrNotInitialized)
	}

	vaultID, _ := keeper.GetVaultID()
	password, source, err := GetPasswordWithRetry(cfg, "Enter master password: ", vaultID, keeper.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if source == SourcePrompt {
		if id, err := keeper.GetOrCreateVaultID(); err == nil {
			OfferToSavePassword(cfg, id, password)
		}
	}

	creds, err := keeper.Credentials()
	if err != nil {
		// The store is still usable, it just starts empty
		fmt.Fprintf(os.Stderr, "Error reading data from file: %s\n", err)
	}
	return keeper, creds
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: keeppass not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'keeppass init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: keeppass is already initialized here\n")
		fmt.Fprintf(os.Stderr, "Use 'keeppass status' to see current state\n")
	case errors.Is(err, core.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Incorrect master password. Access denied.\n")
	case errors.Is(err, core.ErrNoSnapshots):
		fmt.Fprintf(os.Stderr, "Error: no snapshots\n")
		fmt.Fprintf(os.Stderr, "Use 'keeppass snapshot' to create one\n")
	case errors.Is(err, core.ErrSnapshotNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'keeppass snapshots' to list available ids\n")
	case errors.Is(err, store.ErrPersistenceUnavailable):
		fmt.Fprintf(os.Stderr, "Error saving data to file: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
