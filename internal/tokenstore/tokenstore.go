// Package tokenstore is the durable home of the session token, the
// counterpart of the site's localStorage entry under the "token" key.
// The token is sealed at rest with a per-install key kept next to it.
package tokenstore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

type Store struct {
	path string
}

// New returns a store writing the token to path. The sealing key lives at
// path + ".key" with 0600 permissions.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) keyPath() string { return s.path + ".key" }

// Save seals and writes the token, creating parent directories and the
// sealing key on first use.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token dir: %w", err)
	}
	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(token), nil)
	if err := os.WriteFile(s.path, sealed, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none has been saved.
func (s *Store) Load() (string, error) {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	key, err := os.ReadFile(s.keyPath())
	if err != nil {
		return "", fmt.Errorf("read token key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return "", errors.New("open token: truncated")
	}
	nonce, box := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plain, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}
	return string(plain), nil
}

// Clear removes the stored token. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Store) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(s.keyPath())
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("create token key: %w", err)
	}
	if err := os.WriteFile(s.keyPath(), key, 0o600); err != nil {
		return nil, fmt.Errorf("create token key: %w", err)
	}
	return key, nil
}
