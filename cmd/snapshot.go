package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/illarion/keeppass/internal/config"
)

// Snapshot stores the current credentials in the meta database
func Snapshot(ctx context.Context, cfg *config.Config) {
	keeper, _ := unlock(cfg)

	id, err := keeper.Snapshot(ctx)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("snapshot %d stored\n", id)
}

// Snapshots lists stored snapshots
func Snapshots(ctx context.Context, cfg *config.Config) {
	keeper, _ := unlock(cfg)

	snaps, err := keeper.Snapshots(ctx)
	if err != nil {
		HandleError(err)
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots")
		return
	}

	fmt.Printf("%-6s %-25s %s\n", "ID", "Created", "Credentials")
	for _, s := range snaps {
		fmt.Printf("%-6d %-25s %d\n", s.ID, s.Created.Format(time.RFC3339), s.Count)
	}
}

// Restore replaces the credentials with a snapshot
func Restore(ctx context.Context, cfg *config.Config, id uint64, force bool) {
	keeper, creds := unlock(cfg)

	if !force {
		target := "the latest snapshot"
		if id != 0 {
			target = fmt.Sprintf("snapshot %d", id)
		}
		fmt.Printf("Replace %d stored credential(s) with %s? [Y/n]: ", creds.Len(), target)
		if !prompter.Confirm("") {
			fmt.Println("Cancelled")
			return
		}
	}

	result, err := keeper.Restore(ctx, id)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("restored snapshot %d (%d credentials)\n", result.Restored.ID, result.Restored.Count)
	fmt.Printf("previous state saved as snapshot %d\n", result.BackupID)
}
