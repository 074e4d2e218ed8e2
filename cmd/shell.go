package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/crypto"
	"github.com/illarion/keeppass/internal/store"
)

const menu = `
Password Manager
1. Add Credential
2. Retrieve Credential
3. Delete Credential
4. Update Credential
5. List All Credentials
6. Exit
`

// Shell runs the interactive menu until the user exits, input ends or ctx
// is cancelled
func Shell(ctx context.Context, cfg *config.Config) {
	_, creds := unlock(cfg)

	for {
		fmt.Print(menu)
		answer, err := readMenuChoice(ctx, "Enter your choice: ")
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				fmt.Printf("\nError: %s\n", err)
			}
			fmt.Println("\nExiting Password Manager.")
			return
		}

		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			fmt.Println("Invalid input. Please enter a number between 1 and 6.")
			continue
		}

		if !runMenuChoice(creds, choice) {
			fmt.Println("Exiting Password Manager.")
			return
		}
	}
}

// runMenuChoice performs one menu action and reports whether to continue
func runMenuChoice(creds *store.Store, choice int) bool {
	switch choice {
	case 1:
		website, err := prompter.ReadLine("Enter website: ")
		if err != nil {
			return false
		}
		username, err := prompter.ReadLine("Enter username: ")
		if err != nil {
			return false
		}
		password, err := prompter.ReadPassword("Enter password: ")
		if err != nil {
			return false
		}
		addCredential(creds, username, string(password), website)
		crypto.ClearBytes(password)
	case 2:
		website, err := prompter.ReadLine("Enter website to retrieve credentials: ")
		if err != nil {
			return false
		}
		retrieveCredential(creds, website)
	case 3:
		website, err := prompter.ReadLine("Enter website to delete credentials: ")
		if err != nil {
			return false
		}
		deleteCredential(creds, website)
	case 4:
		website, err := prompter.ReadLine("Enter website to update credentials: ")
		if err != nil {
			return false
		}
		updateCredential(creds, website, "")
	case 5:
		listCredentials(creds)
	case 6:
		return false
	default:
		fmt.Println("Invalid choice. Please try again.")
	}
	return true
}

// readMenuChoice reads one line but gives up as soon as ctx is cancelled
func readMenuChoice(ctx context.Context, prompt string) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := prompter.ReadLine(prompt)
		ch <- result{line, err}
	}()

	// On cancel the reader stays blocked on stdin; Shell returns and the
	// process exits right after, so it is never collected.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
