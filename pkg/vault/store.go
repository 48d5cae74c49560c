package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/otpvault/otpvault/pkg/credential"
)

// CurrentVersion is the only store schema version this build reads or
// writes. Any other value on disk is a hard failure, never auto-upgraded.
const CurrentVersion = "1.0.0"

// Store is the decrypted credential collection. The JSON form is the
// export/import document: {"otp": {alias: record}, "version": "1.0.0"}.
type Store struct {
	Version     string                           `json:"version"`
	Credentials map[string]credential.Credential `json:"otp"`
}

// NewStore returns an empty store at the current schema version.
func NewStore() *Store {
	return &Store{
		Version:     CurrentVersion,
		Credentials: map[string]credential.Credential{},
	}
}

// Get returns the credential stored under alias.
func (s *Store) Get(alias string) (credential.Credential, error) {
	c, ok := s.Credentials[alias]
	if !ok {
		return credential.Credential{}, fmt.Errorf("%w: %q", ErrAliasNotFound, alias)
	}
	return c, nil
}

// Add inserts a credential under a previously unused alias.
func (s *Store) Add(alias string, c credential.Credential) error {
	if _, ok := s.Credentials[alias]; ok {
		return fmt.Errorf("%w: %q", ErrAliasExists, alias)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.Credentials[alias] = c
	return nil
}

// Set replaces the credential stored under an existing alias, used to
// persist HOTP counter advances.
func (s *Store) Set(alias string, c credential.Credential) error {
	if _, ok := s.Credentials[alias]; !ok {
		return fmt.Errorf("%w: %q", ErrAliasNotFound, alias)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.Credentials[alias] = c
	return nil
}

// Remove deletes the credential stored under alias.
func (s *Store) Remove(alias string) error {
	if _, ok := s.Credentials[alias]; !ok {
		return fmt.Errorf("%w: %q", ErrAliasNotFound, alias)
	}
	delete(s.Credentials, alias)
	return nil
}

// Rename moves a credential to a new, unused alias.
func (s *Store) Rename(oldAlias, newAlias string) error {
	c, ok := s.Credentials[oldAlias]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAliasNotFound, oldAlias)
	}
	if _, ok := s.Credentials[newAlias]; ok {
		return fmt.Errorf("%w: %q", ErrAliasExists, newAlias)
	}
	delete(s.Credentials, oldAlias)
	s.Credentials[newAlias] = c
	return nil
}

// Aliases lists the stored aliases in sorted order.
func (s *Store) Aliases() []string {
	aliases := lo.Keys(s.Credentials)
	sort.Strings(aliases)
	return aliases
}

// Merge folds the other store's credentials into this one. The merge is
// all-or-nothing: a version mismatch or any alias present in both stores
// aborts it before anything is copied, and the error lists every
// conflicting alias.
func (s *Store) Merge(other *Store) error {
	if other.Version != s.Version {
		return fmt.Errorf("%w: store version %q, incoming version %q", ErrUnsupportedMigration, s.Version, other.Version)
	}
	if conflicts := lo.Intersect(s.Aliases(), other.Aliases()); len(conflicts) > 0 {
		return fmt.Errorf("%w: %s; consider renaming them with `otp mv` before the import",
			ErrMergeConflict, strings.Join(conflicts, ", "))
	}
	for alias, c := range other.Credentials {
		s.Credentials[alias] = c
	}
	return nil
}

// ExportJSON emits the decrypted store document. JSON is the single
// supported interchange format.
func (s *Store) ExportJSON() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// ImportJSON parses a store document back into a Store. Credential records
// are fully re-validated; an unsupported version is rejected outright.
func ImportJSON(data []byte) (*Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if s.Credentials == nil {
		s.Credentials = map[string]credential.Credential{}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("%w: supported %q, got %q", ErrUnsupportedVersion, CurrentVersion, s.Version)
	}
	for alias, c := range s.Credentials {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("alias %q: %w", alias, err)
		}
	}
	return nil
}
