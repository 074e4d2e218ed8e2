package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/illarion/keeppass/internal/store"
)

// exportFile is the YAML document written by Export and read by Import
type exportFile struct {
	Version     int            `yaml:"version"`
	Credentials []store.Record `yaml:"credentials"`
}

// Export writes all credentials, passwords in clear, as YAML
func (k *Keeper) Export(ctx context.Context, w io.Writer) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	creds, err := k.Credentials()
	if err != nil {
		return 0, err
	}

	doc := exportFile{Version: 1, Credentials: creds.List()}
	if doc.Credentials == nil {
		doc.Credentials = []store.Record{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("failed to encode export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to encode export: %w", err)
	}
	return len(doc.Credentials), nil
}

// ImportResult lists what happened to each imported website
type ImportResult struct {
	Added      []string
	Duplicates []string // Already stored, left untouched
	Invalid    []string // Would break the credentials file format
}

// Import adds the credentials of a YAML export. Existing websites are kept
// as they are. A persistence failure stops the import.
func (k *Keeper) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var doc exportFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &ImportResult{}, nil
		}
		return nil, fmt.Errorf("failed to parse import: %w", err)
	}

	creds, err := k.Credentials()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range doc.Credentials {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := creds.Add(rec.Username, rec.Password, rec.Website)
		switch {
		case err == nil:
			result.Added = append(result.Added, rec.Website)
		case errors.Is(err, store.ErrDuplicateKey):
			result.Duplicates = append(result.Duplicates, rec.Website)
		case errors.Is(err, store.ErrInvalidField):
			result.Invalid = append(result.Invalid, rec.Website)
		default:
			return result, err
		}
	}

	k.log.Info("import finished", "added", len(result.Added), "duplicates", len(result.Duplicates), "invalid", len(result.Invalid))
	return result, nil
}
