package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/natefinch/atomic"

	"github.com/illarion/keeppass/internal/logging"
)

// Store owns the sorted credential collection and its file
type Store struct {
	path    string
	records []Record
	log     *slog.Logger

	loadErr error // set when an existing file could not be read
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for load and persist diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// Open loads the credentials file at path.
//
// A missing file yields an empty store. If the file exists but cannot be
// read, Open still returns a usable empty store together with an error
// wrapping ErrPersistenceUnavailable. Such a store never writes the file,
// so the unread contents cannot be replaced by the empty collection.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		log:  logging.New("store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		s.log.Warn("starting with empty credential set", "path", path, "error", err)
		s.loadErr = err
		return s, err
	}
	return s, nil
}

// Path returns the credentials file path
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored credentials
func (s *Store) Len() int {
	return len(s.records)
}

// Add stores a new credential. It returns ErrDuplicateKey if website is
// already present.
func (s *Store) Add(username, password, website string) error {
	rec := Record{Username: username, Password: password, Website: website}
	if err := rec.validate(); err != nil {
		return err
	}
	if _, ok := locate(s.records, website); ok {
		return ErrDuplicateKey
	}

	s.records = append(s.records, rec)
	sortByWebsite(s.records)
	return s.persist()
}

// Retrieve returns the credential stored for website
func (s *Store) Retrieve(website string) (Record, error) {
	i, ok := locate(s.records, website)
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[i], nil
}

// Delete removes the credential stored for website
func (s *Store) Delete(website string) error {
	i, ok := locate(s.records, website)
	if !ok {
		return ErrNotFound
	}

	// Removing one element keeps the rest in order
	s.records = slices.Delete(s.records, i, i+1)
	return s.persist()
}

// Update replaces username and password of the credential stored for
// website. The website itself cannot be changed.
func (s *Store) Update(website, username, password string) error {
	i, ok := locate(s.records, website)
	if !ok {
		return ErrNotFound
	}
	rec := Record{Username: username, Password: password, Website: website}
	if err := rec.validate(); err != nil {
		return err
	}

	s.records[i] = rec
	sortByWebsite(s.records)
	return s.persist()
}

// List returns a copy of all credentials in website order
func (s *Store) List() []Record {
	return slices.Clone(s.records)
}

// Replace swaps the whole collection for records and persists it.
// When several records share a website the last one wins.
func (s *Store) Replace(records []Record) error {
	byWebsite := make(map[string]int, len(records))
	next := make([]Record, 0, len(records))
	for _, rec := range records {
		if err := rec.validate(); err != nil {
			return fmt.Errorf("%w: %q", err, rec.Website)
		}
		if i, ok := byWebsite[rec.Website]; ok {
			next[i] = rec
			continue
		}
		byWebsite[rec.Website] = len(next)
		next = append(next, rec)
	}

	sortByWebsite(next)
	s.records = next
	return s.persist()
}

func (s *Store) load() error {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no credentials file yet", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	sortByWebsite(records)
	s.records = records
	s.log.Debug("loaded credentials", "path", s.path, "count", len(records))
	return nil
}

// persist rewrites the whole file. On failure the previous file is left
// untouched and the in-memory collection keeps the mutation.
func (s *Store) persist() error {
	if s.loadErr != nil {
		return fmt.Errorf("refusing to overwrite unread file: %w", s.loadErr)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, s.records); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	if err := atomic.WriteFile(s.path, &buf); err != nil {
		s.log.Error("failed to save credentials", "path", s.path, "error", err)
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	if err := os.Chmod(s.path, 0600); err != nil {
		s.log.Warn("failed to restrict credentials file permissions", "path", s.path, "error", err)
	}

	s.log.Debug("saved credentials", "path", s.path, "count", len(s.records))
	return nil
}
