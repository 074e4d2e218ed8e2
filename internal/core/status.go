package core

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/git"
)

// StatusInfo describes the vault without needing the master password
type StatusInfo struct {
	CredentialsPath   string
	CredentialsExists bool
	CredentialsSize   int64
	RecordCount       int
	LoadError         error

	MetaPath      string
	Initialized   bool
	Created       time.Time
	Modified      time.Time
	KDFIterations uint32
	SnapshotCount int
	LastSnapshot  time.Time
	VaultID       string

	GitStatus *git.GitStatus
}

// Status returns the current status (no password required)
func (k *Keeper) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := &StatusInfo{
		CredentialsPath: k.credentialsPath,
		MetaPath:        k.metaPath,
		KDFIterations:   crypto.DefaultIters,
	}

	if info, err := os.Stat(k.credentialsPath); err == nil {
		status.CredentialsExists = true
		status.CredentialsSize = info.Size()
	}

	creds, err := k.Credentials()
	status.LoadError = err
	status.RecordCount = creds.Len()

	if db, err := k.openMeta(); err == nil {
		status.Initialized = true
		// Missing values are not critical here
		status.Created, _ = db.GetCreated()
		status.Modified, _ = db.GetModified()
		if iters, err := db.GetIterations(); err == nil {
			status.KDFIterations = iters
		}
		status.VaultID, _ = db.GetVaultID()
		if snaps, err := db.ListSnapshots(); err == nil {
			status.SnapshotCount = len(snaps)
			if len(snaps) > 0 {
				status.LastSnapshot = snaps[len(snaps)-1].Created
			}
		}
		db.Close()
	}

	workDir := filepath.Dir(k.credentialsPath)
	files := []string{filepath.Base(k.credentialsPath), relativeTo(workDir, k.metaPath)}
	gitStatus, err := git.CheckGitIntegration(ctx, workDir, files)
	if err == nil && gitStatus.IsRepo {
		status.GitStatus = gitStatus
	}

	return status, nil
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
