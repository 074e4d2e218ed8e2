package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/illarion/keeppass/internal/store"
)

// The helpers below print the outcome of one store operation and report
// whether it succeeded. The interactive shell keeps going on failure, the
// one-shot commands exit non-zero.

func addCredential(s *store.Store, username, password, website string) bool {
	err := s.Add(username, password, website)
	switch {
	case err == nil:
		fmt.Println("Credential added successfully!")
		return true
	case errors.Is(err, store.ErrDuplicateKey):
		fmt.Printf("Credential for the website '%s' already exists.\n", website)
	default:
		reportStoreError(err)
	}
	return false
}

func retrieveCredential(s *store.Store, website string) bool {
	rec, err := s.Retrieve(website)
	if err != nil {
		fmt.Printf("No credentials found for the website: %s\n", website)
		return false
	}
	printRecord(rec)
	fmt.Println()
	return true
}

func deleteCredential(s *store.Store, website string) bool {
	err := s.Delete(website)
	switch {
	case err == nil:
		fmt.Println("Credential deleted successfully!")
		return true
	case errors.Is(err, store.ErrNotFound):
		fmt.Printf("No credentials found for the website: %s\n", website)
	default:
		reportStoreError(err)
	}
	return false
}

// updateCredential shows the stored entry and asks for the new values.
// username is used as is when non-empty.
func updateCredential(s *store.Store, website, username string) bool {
	existing, err := s.Retrieve(website)
	if err != nil {
		fmt.Printf("No credentials found for the website: %s\n", website)
		return false
	}

	fmt.Println("Existing credentials:")
	printRecord(existing)

	if username == "" {
		username, err = prompter.ReadLine("Enter new username: ")
		if err != nil {
			reportStoreError(err)
			return false
		}
	}
	password, err := prompter.ReadPassword("Enter new password: ")
	if err != nil {
		reportStoreError(err)
		return false
	}

	if err := s.Update(website, username, string(password)); err != nil {
		reportStoreError(err)
		return false
	}
	fmt.Println("Credentials updated successfully!")
	return true
}

func listCredentials(s *store.Store) {
	records := s.List()
	if len(records) == 0 {
		fmt.Println("No credentials stored.")
		return
	}

	fmt.Printf("%-20s%-20s%-20s\n", "Website", "Username", "Password")
	fmt.Println(strings.Repeat("-", 60))
	for _, r := range records {
		fmt.Printf("%-20s%-20s%-20s\n", r.Website, r.Username, r.Password)
	}
	fmt.Println()
}

func printRecord(r store.Record) {
	fmt.Printf("Website: %s\n", r.Website)
	fmt.Printf("Username: %s\n", r.Username)
	fmt.Printf("Password: %s\n", r.Password)
}

func reportStoreError(err error) {
	switch {
	case errors.Is(err, store.ErrInvalidField):
		fmt.Fprintln(os.Stderr, "Error: values cannot contain line breaks")
	case errors.Is(err, store.ErrPersistenceUnavailable):
		fmt.Fprintf(os.Stderr, "Error saving data to file: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}
