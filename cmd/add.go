package cmd

import (
	"context"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/crypto"
)

// Add stores a new credential for website
func Add(_ context.Context, cfg *config.Config, website, username string) {
	_, creds := unlock(cfg)

	if username == "" {
		var err error
		username, err = prompter.ReadLine("Enter username: ")
		if err != nil {
			HandleError(err)
		}
	}
	password, err := prompter.ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if !addCredential(creds, username, string(password), website) {
		os.Exit(1)
	}
}
