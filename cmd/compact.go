package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/core"
)

// Compact compacts the meta database to reclaim unused space
func Compact(cfg *config.Config) {
	keeper := newKeeper(cfg)
	if !keeper.IsInitialized() {
		HandleError(core.ErrNotInitialized)
	}

	info, err := os.Stat(cfg.MetaDB)
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := keeper.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(cfg.MetaDB)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(info.Size()))
}
