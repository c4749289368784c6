// Package registry persists SRP registrations (username, salt, verifier) for the srp6a tool.
//
// Each registration lives in its own YAML file named after a hash of the
// normalized username, so usernames never appear in file names.
package registry

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/pkg/modint"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

const (
	registrationFileMode = 0o600
	dirName              = "registrations"
)

var (
	// ErrNotFound is returned by Load when no registration exists for a username.
	ErrNotFound = errors.New("registration not found")
	// ErrUsernameMismatch is returned by Load when the stored entry belongs to another username.
	ErrUsernameMismatch = errors.New("registration belongs to a different username")
)

// Store manages registration files in a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it with 0700 permissions.
func NewStore(dir string) (*Store, error) {
	if err := config.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// NewDefaultStore creates a store in <UserConfigDir>/srp6a/registrations.
func NewDefaultStore() (*Store, error) {
	configDir, err := config.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(configDir, dirName))
}

// Save writes reg, replacing any previous registration for the same username.
func (s *Store) Save(reg protocol.Registration) error {
	if err := validate(reg); err != nil {
		return err
	}

	data, err := yaml.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal registration: %w", err)
	}

	if err := os.WriteFile(s.filename(reg.Username), data, registrationFileMode); err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

// Load reads the registration for username.
func (s *Store) Load(username string) (protocol.Registration, error) {
	data, err := os.ReadFile(s.filename(username))
	if err != nil {
		if os.IsNotExist(err) {
			return protocol.Registration{}, fmt.Errorf("%w: %s", ErrNotFound, username)
		}
		return protocol.Registration{}, fmt.Errorf("failed to read registration: %w", err)
	}

	var reg protocol.Registration
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return protocol.Registration{}, fmt.Errorf("failed to parse registration: %w", err)
	}
	if err := validate(reg); err != nil {
		return protocol.Registration{}, err
	}
	if norm.NFKC.String(reg.Username) != norm.NFKC.String(username) {
		return protocol.Registration{}, fmt.Errorf("%w: requested %q, found %q", ErrUsernameMismatch, username, reg.Username)
	}
	return reg, nil
}

// Delete removes the registration for username. Deleting a missing entry is not an error.
func (s *Store) Delete(username string) error {
	if err := os.Remove(s.filename(username)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

// Exists reports whether a registration is stored for username.
func (s *Store) Exists(username string) bool {
	_, err := os.Stat(s.filename(username))
	return err == nil
}

// filename uses the first 16 hex characters of SHA-256(NFKC(username)).
// Format: user-<hash>.yaml
func (s *Store) filename(username string) string {
	sum := sha256.Sum256([]byte(norm.NFKC.String(username)))
	return filepath.Join(s.dir, fmt.Sprintf("user-%x.yaml", sum[:8]))
}

func validate(reg protocol.Registration) error {
	if reg.Username == "" {
		return fmt.Errorf("registration username is required")
	}
	if _, err := modint.FromHex(reg.Salt); err != nil {
		return fmt.Errorf("invalid registration salt: %w", err)
	}
	if _, err := modint.FromHex(reg.Verifier); err != nil {
		return fmt.Errorf("invalid registration verifier: %w", err)
	}
	if reg.HashAlgorithm == "" || reg.PrimeGroup == "" || reg.KDF == "" {
		return fmt.Errorf("registration for %q does not record its hash algorithm, prime group and kdf", reg.Username)
	}
	if reg.Iterations < 0 {
		return fmt.Errorf("invalid registration iteration count %d", reg.Iterations)
	}
	return nil
}
