package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/illarion/keeppass/internal/store"
)

func newKeeper(t *testing.T) *Keeper {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "credentials.txt"), filepath.Join(dir, ".keeppass.db"))
}

func newInitialized(t *testing.T) *Keeper {
	t.Helper()
	k := newKeeper(t)
	if err := k.Init([]byte("master")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return k
}

func TestInit(t *testing.T) {
	k := newKeeper(t)

	if k.IsInitialized() {
		t.Error("Should not be initialized before Init")
	}
	if err := k.Init([]byte("master")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !k.IsInitialized() {
		t.Error("Should be initialized after Init")
	}
	if err := k.Init([]byte("master")); err != ErrAlreadyExists {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	k := newKeeper(t)

	if err := k.VerifyPassword([]byte("master")); err != ErrNotInitialized {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if _, err := os.Stat(k.MetaPath()); !os.IsNotExist(err) {
		t.Error("VerifyPassword should not create the meta database")
	}

	if err := k.Init([]byte("master")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := k.VerifyPassword([]byte("master")); err != nil {
		t.Errorf("VerifyPassword with correct password failed: %v", err)
	}
	if err := k.VerifyPassword([]byte("admin123")); err != ErrWrongPassword {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	k := newInitialized(t)

	if err := k.ChangePassword([]byte("wrong"), []byte("new")); err != ErrWrongPassword {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
	if err := k.ChangePassword([]byte("master"), []byte("new")); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if err := k.VerifyPassword([]byte("master")); err != ErrWrongPassword {
		t.Errorf("Old password should be rejected, got %v", err)
	}
	if err := k.VerifyPassword([]byte("new")); err != nil {
		t.Errorf("New password should be accepted, got %v", err)
	}
}

func TestVaultID(t *testing.T) {
	k := newInitialized(t)

	id, err := k.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("GetOrCreateVaultID failed: %v", err)
	}
	got, err := k.GetVaultID()
	if err != nil {
		t.Fatalf("GetVaultID failed: %v", err)
	}
	if got != id {
		t.Errorf("GetVaultID = %s, want %s", got, id)
	}
}

func addAll(t *testing.T, k *Keeper, records ...store.Record) {
	t.Helper()
	creds, err := k.Credentials()
	if err != nil {
		t.Fatalf("Credentials failed: %v", err)
	}
	for _, r := range records {
		if err := creds.Add(r.Username, r.Password, r.Website); err != nil {
			t.Fatalf("Add(%s) failed: %v", r.Website, err)
		}
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	ctx := context.Background()
	k := newInitialized(t)

	if _, err := k.Restore(ctx, 0); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("Expected ErrNoSnapshots, got %v", err)
	}

	original := []store.Record{
		{Username: "alice", Password: "pw1", Website: "bank.com"},
		{Username: "bob", Password: "pw2", Website: "mail.com"},
	}
	addAll(t, k, original...)

	id, err := k.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	creds, _ := k.Credentials()
	if err := creds.Delete("bank.com"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := creds.Add("carol", "pw3", "shop.com"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	result, err := k.Restore(ctx, id)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.Restored.ID != id {
		t.Errorf("Restored snapshot %d, want %d", result.Restored.ID, id)
	}
	if diff := cmp.Diff(original, creds.List()); diff != "" {
		t.Errorf("Restored credentials mismatch (-want +got):\n%s", diff)
	}

	// The replaced state is kept as a backup snapshot
	snaps, err := k.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots failed: %v", err)
	}
	if len(snaps) != 2 || snaps[1].ID != result.BackupID || snaps[1].Count != 2 {
		t.Errorf("Unexpected snapshots after restore: %+v", snaps)
	}

	// Restored state is on disk too
	reloaded, err := store.Open(k.CredentialsPath())
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	if diff := cmp.Diff(original, reloaded.List()); diff != "" {
		t.Errorf("Disk mismatch after restore (-want +got):\n%s", diff)
	}
}

func TestSnapshot_NotInitialized(t *testing.T) {
	k := newKeeper(t)
	if _, err := k.Snapshot(context.Background()); err != ErrNotInitialized {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestCredentials_LoadErrorSticks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	// A directory in place of the credentials file cannot be read
	credsPath := filepath.Join(dir, "credentials.txt")
	if err := os.Mkdir(credsPath, 0700); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	k := New(credsPath, filepath.Join(dir, ".keeppass.db"))
	if err := k.Init([]byte("master")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		creds, err := k.Credentials()
		if !errors.Is(err, store.ErrPersistenceUnavailable) {
			t.Fatalf("Credentials call %d: expected ErrPersistenceUnavailable, got %v", i+1, err)
		}
		if creds == nil {
			t.Fatalf("Credentials call %d returned no store", i+1)
		}
	}

	if _, err := k.Snapshot(ctx); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Errorf("Snapshot: expected ErrPersistenceUnavailable, got %v", err)
	}
	if _, err := k.Restore(ctx, 0); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Errorf("Restore: expected ErrPersistenceUnavailable, got %v", err)
	}
	if _, err := k.Diff(ctx); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Errorf("Diff: expected ErrPersistenceUnavailable, got %v", err)
	}
	var buf bytes.Buffer
	if _, err := k.Export(ctx, &buf); !errors.Is(err, store.ErrPersistenceUnavailable) {
		t.Errorf("Export: expected ErrPersistenceUnavailable, got %v", err)
	}

	snaps, err := k.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("No snapshot should be stored after a failed load, got %d", len(snaps))
	}
}

func TestRestore_UnknownID(t *testing.T) {
	ctx := context.Background()
	k := newInitialized(t)
	addAll(t, k, store.Record{Username: "u", Password: "p", Website: "site.com"})
	if _, err := k.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	_, err := k.Restore(ctx, 99)
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Expected ErrSnapshotNotFound, got %v", err)
	}
	if errors.Is(err, ErrNoSnapshots) {
		t.Error("Unknown id should not be reported as no snapshots")
	}
	if !strings.Contains(err.Error(), "99") {
		t.Errorf("Error should name the id, got %q", err)
	}
}

func TestDiff(t *testing.T) {
	ctx := context.Background()
	k := newInitialized(t)

	if _, err := k.Diff(ctx); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("Expected ErrNoSnapshots, got %v", err)
	}

	addAll(t, k,
		store.Record{Username: "alice", Password: "pw1", Website: "bank.com"},
		store.Record{Username: "bob", Password: "pw2", Website: "mail.com"},
	)
	if _, err := k.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	unchanged, err := k.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if unchanged.Changed() {
		t.Errorf("Expected no changes, got %+v", unchanged.Lines)
	}

	creds, _ := k.Credentials()
	if err := creds.Update("bank.com", "alice", "new-password"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := creds.Add("carol", "pw3", "shop.com"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	result, err := k.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if result.Added != 2 || result.Removed != 1 {
		t.Errorf("Added=%d Removed=%d, want 2 and 1", result.Added, result.Removed)
	}

	var out strings.Builder
	for _, line := range result.Lines {
		out.WriteString(line.String() + "\n")
	}
	text := out.String()
	for _, want := range []string{"- bank.com\talice", "+ bank.com\talice", "+ shop.com\tcarol", "  mail.com\tbob"} {
		if !strings.Contains(text, want) {
			t.Errorf("Diff output missing %q:\n%s", want, text)
		}
	}
	for _, secret := range []string{"pw1", "new-password", "pw3"} {
		if strings.Contains(text, secret) {
			t.Errorf("Diff output leaks password %q", secret)
		}
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newInitialized(t)
	records := []store.Record{
		{Username: "alice", Password: "pw: with colon", Website: "bank.com"},
		{Username: "bob", Password: "", Website: "mail.com"},
	}
	addAll(t, src, records...)

	var buf bytes.Buffer
	n, err := src.Export(ctx, &buf)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Export count = %d, want 2", n)
	}

	dst := newInitialized(t)
	addAll(t, dst, store.Record{Username: "keep", Password: "keep", Website: "mail.com"})

	result, err := dst.Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if diff := cmp.Diff([]string{"bank.com"}, result.Added); diff != "" {
		t.Errorf("Added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mail.com"}, result.Duplicates); diff != "" {
		t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
	}

	creds, _ := dst.Credentials()
	want := []store.Record{
		records[0],
		{Username: "keep", Password: "keep", Website: "mail.com"},
	}
	if diff := cmp.Diff(want, creds.List()); diff != "" {
		t.Errorf("Imported credentials mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_Invalid(t *testing.T) {
	ctx := context.Background()
	k := newInitialized(t)

	input := "credentials:\n  - username: \"a\\nb\"\n    password: x\n    website: bad.com\n"
	result, err := k.Import(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if diff := cmp.Diff([]string{"bad.com"}, result.Invalid); diff != "" {
		t.Errorf("Invalid mismatch (-want +got):\n%s", diff)
	}

	if _, err := k.Import(ctx, strings.NewReader("credentials: [")); err == nil {
		t.Error("Expected parse error")
	}

	empty, err := k.Import(ctx, strings.NewReader(""))
	if err != nil {
		t.Fatalf("Import of empty input failed: %v", err)
	}
	if len(empty.Added) != 0 {
		t.Errorf("Expected nothing added, got %v", empty.Added)
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	k := newKeeper(t)

	status, err := k.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Initialized || status.CredentialsExists || status.RecordCount != 0 {
		t.Errorf("Unexpected status for empty dir: %+v", status)
	}

	if err := k.Init([]byte("master")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	addAll(t, k, store.Record{Username: "u", Password: "p", Website: "site.com"})
	if _, err := k.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	status, err = k.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.Initialized {
		t.Error("Status should report initialized")
	}
	if !status.CredentialsExists || status.CredentialsSize == 0 {
		t.Error("Status should report the credentials file")
	}
	if status.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", status.RecordCount)
	}
	if status.SnapshotCount != 1 || status.LastSnapshot.IsZero() {
		t.Errorf("Snapshot info = %d, %v", status.SnapshotCount, status.LastSnapshot)
	}
	if status.Created.IsZero() {
		t.Error("Created should be set")
	}
}

func TestCompact(t *testing.T) {
	k := newInitialized(t)
	if err := k.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if err := k.VerifyPassword([]byte("master")); err != nil {
		t.Errorf("VerifyPassword after compact failed: %v", err)
	}
}
