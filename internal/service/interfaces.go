// Package service defines the interfaces between the finance engine and
// its collaborators: the persistent guest store, the remote ledger
// gateway, and the session signal.
package service

import (
	"context"
	"time"

	"github.com/citrushq/citrus/internal/model"
)

// Status reports how a mutation operation resolved. Guest-mode operations
// targeting a missing entity are deliberate no-ops rather than errors;
// Status makes that observable to callers and tests.
type Status int

// Mutation outcomes.
const (
	// StatusApplied means the mutation changed the ledger.
	StatusApplied Status = iota
	// StatusNoop means the operation was valid but had nothing to do,
	// such as deleting a built-in account type.
	StatusNoop
	// StatusNotFound means the target entity does not exist and the
	// operation was skipped.
	StatusNotFound
	// StatusFailed means a remote gateway call failed and the in-memory
	// ledger was left at its last known good state.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusNoop:
		return "noop"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GuestStore is the persistent local backend used while anonymous. It
// holds one serialized ledger snapshot, the currency preference (persisted
// independently of login state), and the timestamp of the last login-time
// sync attempt.
type GuestStore interface {
	// LoadSnapshot returns the stored snapshot, or nil if none exists.
	LoadSnapshot(ctx context.Context) (*model.LedgerSnapshot, error)
	SaveSnapshot(ctx context.Context, snap *model.LedgerSnapshot) error
	ClearSnapshot(ctx context.Context) error

	Currency(ctx context.Context) (string, error)
	SetCurrency(ctx context.Context, symbol string) error

	LastSyncAttempt(ctx context.Context) (time.Time, error)
	RecordSyncAttempt(ctx context.Context, at time.Time) error

	Close() error
}

// Gateway is the contract to the remote ledger service. Implementations
// own transport, timeout and retry policy; the engine never retries.
type Gateway interface {
	// FetchCurrentUser returns the authenticated user's profile, or
	// (nil, nil) when the session is anonymous.
	FetchCurrentUser(ctx context.Context) (*model.UserProfile, error)

	// SyncGuestData imports a guest snapshot into the user's remote ledger.
	SyncGuestData(ctx context.Context, snap model.LedgerSnapshot) error

	// FetchSnapshot returns the remote ledger with account identifiers
	// already normalized to a single canonical id.
	FetchSnapshot(ctx context.Context) (*model.LedgerSnapshot, error)

	CreateAccount(ctx context.Context, in model.AccountInput) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, in model.TransactionInput) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	BulkDeleteTransactions(ctx context.Context, ids []string) error
	DeleteAllTransactions(ctx context.Context) error

	TransferFunds(ctx context.Context, req model.TransferRequest) error

	CreateAccountType(ctx context.Context, label string, theme model.Theme) (*model.AccountType, error)
	DeleteAccountType(ctx context.Context, id string) error

	ResetAllData(ctx context.Context) error
}

// Session is the external "current user or none" signal. The engine picks
// its storage backend from it and never manages credentials itself.
type Session interface {
	// CurrentUser returns the authenticated user, or (nil, nil) when
	// anonymous. Errors are treated as anonymous by the engine.
	CurrentUser(ctx context.Context) (*model.UserProfile, error)
}

// RetryOptions configures retry behavior for gateway operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
