package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/citrushq/citrus/internal/model"
)

// Keys under which guest state is persisted. The snapshot is one record;
// the currency preference is stored separately so it survives login.
const (
	keyGuestData   = "guest_data"
	keyCurrency    = "currency"
	keySyncAttempt = "last_sync_attempt"
)

// DefaultCurrency is used when no preference has been saved yet.
const DefaultCurrency = "Rs."

func (s *GuestStore) getValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM guest_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *GuestStore) setValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guest_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot returns the stored guest ledger snapshot, or nil if none
// has been saved.
func (s *GuestStore) LoadSnapshot(ctx context.Context) (*model.LedgerSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, ok, err := s.getValue(ctx, keyGuestData)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var snap model.LedgerSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode guest snapshot: %w", err)
	}

	slog.Debug("loaded guest snapshot",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"account_types", len(snap.AccountTypes))
	return &snap, nil
}

// SaveSnapshot persists the full guest ledger snapshot.
func (s *GuestStore) SaveSnapshot(ctx context.Context, snap *model.LedgerSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: snap", ErrNilParameter)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode guest snapshot: %w", err)
	}

	return s.setValue(ctx, keyGuestData, string(raw))
}

// ClearSnapshot removes the stored guest ledger snapshot.
func (s *GuestStore) ClearSnapshot(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM guest_state WHERE key = ?`, keyGuestData); err != nil {
		return fmt.Errorf("failed to clear guest snapshot: %w", err)
	}
	return nil
}

// Currency returns the persisted currency symbol, falling back to the
// default when none has been saved.
func (s *GuestStore) Currency(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	value, ok, err := s.getValue(ctx, keyCurrency)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultCurrency, nil
	}
	return value, nil
}

// SetCurrency persists the preferred currency symbol. The preference is
// independent of login state.
func (s *GuestStore) SetCurrency(ctx context.Context, symbol string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return err
	}
	return s.setValue(ctx, keyCurrency, symbol)
}

// LastSyncAttempt returns when a login-time sync was last attempted, or
// the zero time if never.
func (s *GuestStore) LastSyncAttempt(ctx context.Context) (time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, err
	}

	value, ok, err := s.getValue(ctx, keySyncAttempt)
	if err != nil || !ok {
		return time.Time{}, err
	}

	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sync attempt time: %w", err)
	}
	return at, nil
}

// RecordSyncAttempt stores the time of a login-time sync attempt so a
// retained snapshot can be told apart from one that was never synced.
func (s *GuestStore) RecordSyncAttempt(ctx context.Context, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.setValue(ctx, keySyncAttempt, at.UTC().Format(time.RFC3339))
}
