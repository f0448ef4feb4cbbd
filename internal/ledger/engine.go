// Package ledger implements the finance state engine: the single
// authoritative owner of the in-memory ledger snapshot for the current
// session. Every mutation goes through it. In guest mode it applies the
// balance arithmetic itself and persists to the local store; once
// authenticated it forwards mutations to the remote gateway and re-fetches
// the authoritative snapshot instead of merging locally.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
)

// Engine owns the ledger snapshot and executes all mutations atomically
// from the caller's point of view: readers never observe a snapshot with
// a balance adjustment applied but its transaction missing, or vice versa.
type Engine struct {
	mu sync.Mutex

	store   service.GuestStore
	gateway service.Gateway
	session service.Session

	accounts     []model.Account
	transactions []model.Transaction
	accountTypes []model.AccountType

	currentUser       *model.UserProfile
	prevAuthenticated bool

	// syncing guards the login-time guest sync: at most one per transition.
	syncing atomic.Bool
	// busy is advisory only; callers may use it to disable concurrent
	// user-triggered mutations, but nothing is enforced.
	busy atomic.Bool
}

// New creates an engine wired to its three collaborators. Call Refresh to
// load the initial snapshot for the current session.
func New(store service.GuestStore, gateway service.Gateway, session service.Session) *Engine {
	return &Engine{
		store:        store,
		gateway:      gateway,
		session:      session,
		accounts:     []model.Account{},
		transactions: []model.Transaction{},
		accountTypes: []model.AccountType{},
	}
}

// Busy reports whether an operation is in flight. Advisory only.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// CurrentUser returns the authenticated user, or nil in guest mode.
func (e *Engine) CurrentUser() *model.UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentUser
}

func (e *Engine) authenticated() bool {
	return e.currentUser != nil
}

// Accounts returns a copy of the current accounts.
func (e *Engine) Accounts() []model.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Account, len(e.accounts))
	copy(out, e.accounts)
	return out
}

// Transactions returns a copy of the current transactions, newest first.
func (e *Engine) Transactions() []model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Transaction, len(e.transactions))
	copy(out, e.transactions)
	return out
}

// AccountTypes returns a copy of the current account types.
func (e *Engine) AccountTypes() []model.AccountType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.AccountType, len(e.accountTypes))
	copy(out, e.accountTypes)
	return out
}

// Snapshot returns a copy of the full ledger snapshot.
func (e *Engine) Snapshot() model.LedgerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() model.LedgerSnapshot {
	snap := model.LedgerSnapshot{
		Accounts:     make([]model.Account, len(e.accounts)),
		Transactions: make([]model.Transaction, len(e.transactions)),
		AccountTypes: make([]model.AccountType, len(e.accountTypes)),
	}
	copy(snap.Accounts, e.accounts)
	copy(snap.Transactions, e.transactions)
	copy(snap.AccountTypes, e.accountTypes)
	return snap
}

// Currency returns the persisted currency preference.
func (e *Engine) Currency(ctx context.Context) (string, error) {
	return e.store.Currency(ctx)
}

// SetCurrency persists the currency preference, independent of login state.
func (e *Engine) SetCurrency(ctx context.Context, symbol string) error {
	return e.store.SetCurrency(ctx, symbol)
}

// LastSyncAttempt returns when a login-time guest sync was last attempted,
// or the zero time if none has been.
func (e *Engine) LastSyncAttempt(ctx context.Context) (time.Time, error) {
	return e.store.LastSyncAttempt(ctx)
}

// findAccount returns the index of the account with the given id, or -1.
// Callers must hold e.mu.
func (e *Engine) findAccount(id string) int {
	for i := range e.accounts {
		if e.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// findTransaction returns the index of the transaction with the given id,
// or -1. Callers must hold e.mu.
func (e *Engine) findTransaction(id string) int {
	for i := range e.transactions {
		if e.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// applyEffect adjusts an account balance by delta. A missing account is
// not an error here: update/delete paths tolerate entries whose account
// has since been removed. Callers must hold e.mu.
func (e *Engine) applyEffect(accountID string, delta decimal.Decimal) {
	if i := e.findAccount(accountID); i >= 0 {
		e.accounts[i].Balance = e.accounts[i].Balance.Add(delta)
	}
}

// persistGuest writes the current snapshot to the guest store. Never
// called while authenticated; failures are logged, not surfaced, so a
// slow disk cannot break an otherwise-applied mutation.
func (e *Engine) persistGuest(ctx context.Context) {
	if e.authenticated() {
		return
	}
	snap := e.snapshotLocked()
	if err := e.store.SaveSnapshot(ctx, &snap); err != nil {
		slog.Error("failed to persist guest snapshot", "error", err)
	}
}

// setState replaces the full in-memory snapshot. Callers must hold e.mu.
func (e *Engine) setState(snap *model.LedgerSnapshot) {
	snap.Normalize()
	e.accounts = snap.Accounts
	e.transactions = snap.Transactions
	e.accountTypes = snap.AccountTypes
}
