package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/illarion/keeppass/internal/storage"
	"github.com/illarion/keeppass/internal/store"
)

// Snapshot stores the current credentials, in their on-disk encoding, in
// the meta database and returns the snapshot id.
func (k *Keeper) Snapshot(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	creds, err := k.Credentials()
	if err != nil {
		return 0, err
	}

	db, err := k.openMeta()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return k.snapshot(db, creds.List())
}

func (k *Keeper) snapshot(db *storage.Storage, records []store.Record) (uint64, error) {
	var buf bytes.Buffer
	if err := store.Encode(&buf, records); err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id, err := db.PutSnapshot(buf.Bytes(), len(records))
	if err != nil {
		return 0, fmt.Errorf("failed to store snapshot: %w", err)
	}

	k.log.Info("snapshot stored", "id", id, "count", len(records))
	return id, nil
}

// Snapshots lists stored snapshots, oldest first
func (k *Keeper) Snapshots(ctx context.Context) ([]storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := k.openMeta()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.ListSnapshots()
}

// loadSnapshot fetches snapshot id, or the latest one when id is 0
func loadSnapshot(db *storage.Storage, id uint64) (*storage.Snapshot, []store.Record, error) {
	var (
		snap *storage.Snapshot
		err  error
	)
	if id == 0 {
		snap, err = db.LatestSnapshot()
	} else {
		snap, err = db.GetSnapshot(id)
	}
	if errors.Is(err, storage.ErrNotFound) {
		if id != 0 {
			return nil, nil, fmt.Errorf("snapshot %d: %w", id, ErrSnapshotNotFound)
		}
		return nil, nil, ErrNoSnapshots
	}
	if err != nil {
		return nil, nil, err
	}

	records, err := store.Decode(bytes.NewReader(snap.Data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot %d: %w", snap.ID, err)
	}
	return snap, records, nil
}

// RestoreResult describes a completed restore
type RestoreResult struct {
	Restored *storage.Snapshot
	BackupID uint64 // Snapshot of the state that was replaced
}

// Restore replaces the credentials with snapshot id (latest when 0).
// The state being replaced is snapshotted first.
func (k *Keeper) Restore(ctx context.Context, id uint64) (*RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	creds, err := k.Credentials()
	if err != nil {
		return nil, err
	}

	db, err := k.openMeta()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, records, err := loadSnapshot(db, id)
	if err != nil {
		return nil, err
	}

	backupID, err := k.snapshot(db, creds.List())
	if err != nil {
		return nil, err
	}

	if err := creds.Replace(records); err != nil {
		return nil, err
	}

	k.log.Info("snapshot restored", "id", snap.ID, "backup", backupID)
	return &RestoreResult{Restored: snap, BackupID: backupID}, nil
}

// DiffResult compares a snapshot with the current credentials
type DiffResult struct {
	SnapshotID uint64
	Added      int
	Removed    int
	Lines      []DiffLine
}

// DiffOp marks a line as kept, added or removed
type DiffOp int

const (
	DiffKeep DiffOp = iota
	DiffAdd
	DiffRemove
)

// DiffLine is one line of a snapshot diff
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String renders the line with a git-style prefix
func (l DiffLine) String() string {
	switch l.Op {
	case DiffAdd:
		return "+ " + l.Text
	case DiffRemove:
		return "- " + l.Text
	default:
		return "  " + l.Text
	}
}

// Changed reports whether the diff has any additions or removals
func (d *DiffResult) Changed() bool {
	return d.Added > 0 || d.Removed > 0
}

// Diff compares the latest snapshot with the current credentials.
// Passwords are shown as short fingerprints, never in clear.
func (k *Keeper) Diff(ctx context.Context) (*DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	creds, err := k.Credentials()
	if err != nil {
		return nil, err
	}

	db, err := k.openMeta()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, records, err := loadSnapshot(db, 0)
	if err != nil {
		return nil, err
	}

	result := diffRecords(records, creds.List())
	result.SnapshotID = snap.ID
	return result, nil
}

// diffRecords runs a line-mode diff over the rendered record lists
func diffRecords(before, after []store.Record) *DiffResult {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(renderRecords(before), renderRecords(after))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	result := &DiffResult{}
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffAdd
		case diffmatchpatch.DiffDelete:
			op = DiffRemove
		default:
			op = DiffKeep
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			result.Lines = append(result.Lines, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
			switch op {
			case DiffAdd:
				result.Added++
			case DiffRemove:
				result.Removed++
			}
		}
	}
	return result
}

func renderRecords(records []store.Record) string {
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "%s\t%s\tpassword:%s\n", r.Website, r.Username, fingerprint(r.Password))
	}
	return sb.String()
}

// fingerprint identifies a password without revealing it
func fingerprint(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:4])
}
