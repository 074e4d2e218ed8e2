package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
)

// Remove deletes the credentials of one or more websites
func Remove(_ context.Context, cfg *config.Config, websites []string) {
	if len(websites) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one website argument\n")
		fmt.Fprintf(os.Stderr, "Usage: keeppass rm <website> [website...]\n")
		os.Exit(1)
	}

	_, creds := unlock(cfg)

	failed := false
	for _, website := range websites {
		if !deleteCredential(creds, website) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
