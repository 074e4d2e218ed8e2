package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/keeppass/internal/config"
)

// Diff compares the latest snapshot with the current credentials
func Diff(ctx context.Context, cfg *config.Config) {
	keeper, _ := unlock(cfg)

	result, err := keeper.Diff(ctx)
	if err != nil {
		HandleError(err)
	}

	if !result.Changed() {
		fmt.Printf("No changes since snapshot %d\n", result.SnapshotID)
		return
	}

	fmt.Printf("Changes since snapshot %d:\n", result.SnapshotID)
	for _, line := range result.Lines {
		fmt.Println(line)
	}
	fmt.Printf("\n%d added, %d removed\n", result.Added, result.Removed)
}
