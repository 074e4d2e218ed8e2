package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// MaxSnapshots is how many snapshots are kept before the oldest are pruned
const MaxSnapshots = 50

// Snapshot is a stored copy of the encoded credentials file
type Snapshot struct {
	ID      uint64    `json:"id"`
	Created time.Time `json:"created"`
	Count   int       `json:"count"`
	Data    []byte    `json:"data,omitempty"`
}

func snapshotKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// PutSnapshot stores data as a new snapshot and returns its id.
// Snapshots beyond MaxSnapshots are pruned oldest first.
func (s *Storage) PutSnapshot(data []byte, count int) (uint64, error) {
	var id uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(SnapshotsBucket)
		if snapshots == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		var err error
		id, err = snapshots.NextSequence()
		if err != nil {
			return err
		}

		value, err := json.Marshal(Snapshot{
			ID:      id,
			Created: time.Now(),
			Count:   count,
			Data:    data,
		})
		if err != nil {
			return err
		}
		if err := snapshots.Put(snapshotKey(id), value); err != nil {
			return err
		}

		return prune(snapshots, MaxSnapshots)
	})
	return id, err
}

// prune deletes the oldest snapshots until at most keep remain
func prune(snapshots *bolt.Bucket, keep int) error {
	var keys [][]byte
	c := snapshots.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	if len(keys) <= keep {
		return nil
	}

	for _, k := range keys[:len(keys)-keep] {
		if err := snapshots.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// GetSnapshot returns the snapshot with the given id
func (s *Storage) GetSnapshot(id uint64) (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(SnapshotsBucket)
		if snapshots == nil {
			return fmt.Errorf("snapshots bucket not found")
		}
		data := snapshots.Get(snapshotKey(id))
		if data == nil {
			return fmt.Errorf("snapshot %d: %w", id, ErrNotFound)
		}
		snap = &Snapshot{}
		return json.Unmarshal(data, snap)
	})
	return snap, err
}

// LatestSnapshot returns the most recent snapshot
func (s *Storage) LatestSnapshot() (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(SnapshotsBucket)
		if snapshots == nil {
			return fmt.Errorf("snapshots bucket not found")
		}
		_, data := snapshots.Cursor().Last()
		if data == nil {
			return fmt.Errorf("snapshot: %w", ErrNotFound)
		}
		snap = &Snapshot{}
		return json.Unmarshal(data, snap)
	})
	return snap, err
}

// ListSnapshots returns all snapshots oldest first, without their data
func (s *Storage) ListSnapshots() ([]Snapshot, error) {
	var list []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		snapshots := tx.Bucket(SnapshotsBucket)
		if snapshots == nil {
			return nil
		}
		return snapshots.ForEach(func(k, v []byte) error {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return err
			}
			snap.Data = nil
			list = append(list, snap)
			return nil
		})
	})
	return list, err
}
