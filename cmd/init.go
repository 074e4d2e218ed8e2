package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/crypto"
)

// Init creates the meta database and sets the master password
func Init(cfg *config.Config) {
	keeper := newKeeper(cfg)

	// Read password (env var or prompt with confirmation)
	password := cfg.MasterPassword
	if password == nil {
		var err error
		password, err = prompter.ReadPasswordConfirm()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}
	defer crypto.ClearBytes(password)

	if len(password) == 0 {
		fmt.Fprintln(os.Stderr, "Error: master password cannot be empty")
		os.Exit(1)
	}

	if err := keeper.Init(password); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized %s\n", cfg.MetaDB)
	fmt.Printf("  Credentials will be stored in %s\n", cfg.CredentialsFile)
}
