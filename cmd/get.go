package cmd

import (
	"context"
	"os"

	"github.com/illarion/keeppass/internal/config"
)

// Get prints the credential stored for website
func Get(_ context.Context, cfg *config.Config, website string) {
	_, creds := unlock(cfg)

	if !retrieveCredential(creds, website) {
		os.Exit(1)
	}
}
