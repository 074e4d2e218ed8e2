package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/keyring"
)

// Passwd changes the master password
func Passwd(cfg *config.Config) {
	keeper := newKeeper(cfg)

	// Get vault ID for keyring lookup
	vaultID, _ := keeper.GetVaultID()

	currentPassword, _, err := GetPasswordWithRetry(cfg, "Enter current master password: ", vaultID, keeper.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(currentPassword)

	newPassword, err := prompter.ReadPasswordConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassword)

	if len(newPassword) == 0 {
		fmt.Fprintln(os.Stderr, "Error: master password cannot be empty")
		os.Exit(1)
	}

	if err := keeper.ChangePassword(currentPassword, newPassword); err != nil {
		HandleError(err)
	}

	// Keep an existing keyring entry in step with the new password
	if cfg.UseKeyring && vaultID != "" && keyring.HasPassword(vaultID) {
		if err := keyring.SavePassword(vaultID, newPassword); err == nil {
			fmt.Println("Keyring updated with new password")
		}
	}

	fmt.Println("password changed successfully")
}
