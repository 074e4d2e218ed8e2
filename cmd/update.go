package cmd

import (
	"context"
	"os"

	"github.com/illarion/keeppass/internal/config"
)

// Update replaces username and password for website
func Update(_ context.Context, cfg *config.Config, website, username string) {
	_, creds := unlock(cfg)

	if !updateCredential(creds, website, username) {
		os.Exit(1)
	}
}
