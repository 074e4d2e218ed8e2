package store

import (
	"errors"
	"strings"

	"github.com/illarion/keeppass/internal/transform"
)

var (
	ErrDuplicateKey           = errors.New("credential already exists")
	ErrNotFound               = errors.New("credential not found")
	ErrPersistenceUnavailable = errors.New("credentials file unavailable")
	ErrInvalidField           = errors.New("field contains a line break")
)

// Record is one stored credential. Website is the unique key.
type Record struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Website  string `yaml:"website"`
}

// validate rejects records that would not survive the line-based file format
func (r Record) validate() error {
	if strings.Contains(r.Website, "\n") || strings.Contains(r.Username, "\n") {
		return ErrInvalidField
	}
	if strings.Contains(transform.ApplyString(r.Password), "\n") {
		return ErrInvalidField
	}
	return nil
}
