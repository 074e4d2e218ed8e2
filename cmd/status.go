package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/git"
	"github.com/illarion/keeppass/internal/keyring"
)

// Status shows the current state of the vault (no password required)
func Status(ctx context.Context, cfg *config.Config) {
	keeper := newKeeper(cfg)

	status, err := keeper.Status(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Println("Credentials:")
	if status.CredentialsExists {
		fmt.Printf("  file: %s (%s)\n", status.CredentialsPath, formatSize(status.CredentialsSize))
		fmt.Printf("  stored: %d\n", status.RecordCount)
	} else {
		fmt.Printf("  file: %s (not created yet)\n", status.CredentialsPath)
	}
	if status.LoadError != nil {
		fmt.Printf("  error: %s\n", status.LoadError)
	}

	fmt.Println("\nVault:")
	if !status.Initialized {
		fmt.Printf("  %s not initialized\n", status.MetaPath)
		fmt.Println("  Run 'keeppass init' to create it")
		return
	}
	fmt.Printf("  file: %s\n", status.MetaPath)
	fmt.Printf("  created: %s\n", status.Created.Format(time.RFC3339))
	fmt.Printf("  modified: %s\n", status.Modified.Format(time.RFC3339))
	fmt.Printf("  master password: PBKDF2-SHA256, %d iterations\n", status.KDFIterations)
	if status.SnapshotCount > 0 {
		fmt.Printf("  snapshots: %d (latest %s)\n", status.SnapshotCount, status.LastSnapshot.Format(time.RFC3339))
	} else {
		fmt.Println("  snapshots: none")
	}

	switch {
	case !cfg.UseKeyring:
		fmt.Println("  keyring: disabled")
	case status.VaultID != "" && keyring.HasPassword(status.VaultID):
		fmt.Println("  keyring: password stored")
	default:
		fmt.Println("  keyring: not stored")
	}

	fmt.Print(git.FormatGitStatus(status.GitStatus))
}
