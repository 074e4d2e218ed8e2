package storage

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/illarion/keeppass/internal/crypto"
)

// Bucket names
var (
	ConfigBucket    = []byte("config")    // Gate verifier, vault id, timestamps
	SnapshotsBucket = []byte("snapshots") // Encoded credential file copies
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigSalt     = []byte("salt")
	ConfigIters    = []byte("iterations")
	ConfigVerifier = []byte("verifier")
	ConfigVaultID  = []byte("vault_id")
)

var ErrNotFound = errors.New("not found")

// Storage provides BBolt-based storage for keeppass metadata
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a meta database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new vault
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, SnapshotsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetGate stores the master password salt, iterations and verifier together
func (s *Storage) SetGate(salt []byte, iterations uint32, verifier []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		iters := make([]byte, 4)
		binary.BigEndian.PutUint32(iters, iterations)

		for _, kv := range []struct{ k, v []byte }{
			{ConfigSalt, salt},
			{ConfigIters, iters},
			{ConfigVerifier, verifier},
		} {
			if err := config.Put(kv.k, kv.v); err != nil {
				return err
			}
		}
		return touch(config)
	})
}

// GetSalt retrieves the KDF salt
func (s *Storage) GetSalt() ([]byte, error) {
	return s.getConfig(ConfigSalt)
}

// GetVerifier retrieves the master password verifier
func (s *Storage) GetVerifier() ([]byte, error) {
	return s.getConfig(ConfigVerifier)
}

// GetIterations retrieves the KDF iterations
func (s *Storage) GetIterations() (uint32, error) {
	iters, err := s.getConfig(ConfigIters)
	if err != nil {
		return 0, err
	}
	if len(iters) != 4 {
		return 0, fmt.Errorf("iterations corrupted")
	}
	return binary.BigEndian.Uint32(iters), nil
}

// GetCreated retrieves the creation timestamp
func (s *Storage) GetCreated() (time.Time, error) {
	return s.getTime(ConfigCreated)
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	return s.getTime(ConfigModified)
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	id, err := s.getConfig(ConfigVaultID)
	if err != nil {
		return "", err
	}
	return string(id), nil
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b, err := crypto.GenerateRandom(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

func (s *Storage) getConfig(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		value = config.Get(key)
		if value == nil {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		// Make a copy since the slice is only valid during the transaction
		value = append([]byte(nil), value...)
		return nil
	})
	return value, err
}

func (s *Storage) getTime(key []byte) (time.Time, error) {
	var t time.Time
	data, err := s.getConfig(key)
	if err != nil {
		return t, err
	}
	return t, t.UnmarshalBinary(data)
}

// touch updates the modified timestamp inside an open transaction
func touch(config *bolt.Bucket) error {
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after pruning snapshots.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = bolt.Compact(dst, s.db, 0)
	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
