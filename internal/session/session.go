// Package session provides the "current user or none" signal consumed by
// the finance engine, plus persistence for the session token between CLI
// invocations.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
)

// Signal resolves the current user through the gateway. Errors resolve to
// anonymous: a client that cannot reach the service behaves like a guest.
type Signal struct {
	gateway service.Gateway
}

// NewSignal creates a session signal backed by the given gateway.
func NewSignal(gw service.Gateway) *Signal {
	return &Signal{gateway: gw}
}

// CurrentUser returns the authenticated user, or (nil, nil) when anonymous.
func (s *Signal) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	user, err := s.gateway.FetchCurrentUser(ctx)
	if err != nil {
		slog.Warn("failed to resolve current user, continuing as guest", "error", err)
		return nil, nil
	}
	return user, nil
}

// TokenFile stores the session token on disk between CLI invocations.
type TokenFile struct {
	path string
}

// NewTokenFile creates a token store at the given path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Load returns the saved token, or "" when none exists.
func (t *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions.
func (t *TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0750); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(t.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the saved token.
func (t *TokenFile) Clear() error {
	err := os.Remove(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
