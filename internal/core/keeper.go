package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/logging"
	"github.com/illarion/keeppass/internal/storage"
	"github.com/illarion/keeppass/internal/store"
)

var (
	ErrNotInitialized = errors.New("keeppass not initialized")
	ErrAlreadyExists  = errors.New("keeppass already initialized")
	ErrWrongPassword  = errors.New("wrong password")
	ErrNoSnapshots    = errors.New("no snapshots")

	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Keeper ties the credential store to the meta database
type Keeper struct {
	credentialsPath string
	metaPath        string
	log             *slog.Logger

	creds    *store.Store
	credsErr error // load error of creds, returned on every call
}

// New creates a Keeper for the given credentials file and meta database
func New(credentialsPath, metaPath string) *Keeper {
	return &Keeper{
		credentialsPath: credentialsPath,
		metaPath:        metaPath,
		log:             logging.New("core"),
	}
}

// CredentialsPath returns the credentials file path
func (k *Keeper) CredentialsPath() string {
	return k.credentialsPath
}

// MetaPath returns the meta database path
func (k *Keeper) MetaPath() string {
	return k.metaPath
}

// Credentials opens the credential store once and returns it on later calls.
// A load error is returned alongside a usable, empty store, on this and
// every later call.
func (k *Keeper) Credentials() (*store.Store, error) {
	if k.creds == nil {
		k.creds, k.credsErr = store.Open(k.credentialsPath, store.WithLogger(logging.New("store")))
	}
	return k.creds, k.credsErr
}

// openMeta opens the meta database, refusing to create one that init never made
func (k *Keeper) openMeta() (*storage.Storage, error) {
	if _, err := os.Stat(k.metaPath); err != nil {
		return nil, ErrNotInitialized
	}
	db, err := storage.Open(k.metaPath)
	if err != nil {
		return nil, err
	}
	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		db.Close()
		return nil, ErrNotInitialized
	}
	return db, nil
}

// IsInitialized reports whether init has been run
func (k *Keeper) IsInitialized() bool {
	db, err := k.openMeta()
	if err != nil {
		return false
	}
	db.Close()
	return true
}

// Init creates the meta database and stores the master password verifier
func (k *Keeper) Init(password []byte) error {
	if _, err := os.Stat(k.metaPath); err == nil {
		return ErrAlreadyExists
	}

	db, err := storage.Open(k.metaPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := setGate(db, password); err != nil {
		return err
	}

	k.log.Info("initialized vault", "meta", k.metaPath)
	return nil
}

func setGate(db *storage.Storage, password []byte) error {
	kdf, err := crypto.NewKDF()
	if err != nil {
		return fmt.Errorf("failed to create KDF: %w", err)
	}

	verifier := kdf.Hash(password)
	defer crypto.ClearBytes(verifier)

	if err := db.SetGate(kdf.Salt, uint32(kdf.Iterations), verifier); err != nil {
		return fmt.Errorf("failed to store password verifier: %w", err)
	}
	return nil
}

// VerifyPassword checks the master password against the stored verifier
func (k *Keeper) VerifyPassword(password []byte) error {
	db, err := k.openMeta()
	if err != nil {
		return err
	}
	defer db.Close()

	return verify(db, password)
}

func verify(db *storage.Storage, password []byte) error {
	salt, err := db.GetSalt()
	if err != nil {
		return ErrNotInitialized
	}
	iterations, err := db.GetIterations()
	if err != nil {
		return ErrNotInitialized
	}
	verifier, err := db.GetVerifier()
	if err != nil {
		return ErrNotInitialized
	}

	kdf := &crypto.KDF{Salt: salt, Iterations: int(iterations)}
	if !kdf.Verify(password, verifier) {
		return ErrWrongPassword
	}
	return nil
}

// ChangePassword replaces the master password verifier
func (k *Keeper) ChangePassword(currentPassword, newPassword []byte) error {
	db, err := k.openMeta()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verify(db, currentPassword); err != nil {
		return err
	}
	if err := setGate(db, newPassword); err != nil {
		return err
	}

	k.log.Info("master password changed")
	return nil
}

// Compact compacts the meta database to reclaim unused space
func (k *Keeper) Compact() error {
	db, err := k.openMeta()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Compact()
}

// GetVaultID retrieves the vault ID from storage
func (k *Keeper) GetVaultID() (string, error) {
	db, err := k.openMeta()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (k *Keeper) GetOrCreateVaultID() (string, error) {
	db, err := k.openMeta()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}
