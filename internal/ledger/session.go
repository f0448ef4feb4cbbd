package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/citrushq/citrus/internal/model"
)

// Refresh re-evaluates the session signal and loads the matching ledger:
//
//  1. Anonymous -> authenticated is a login transition: any stored guest
//     snapshot is synced to the remote service, cleared on success, and
//     the remote ledger is fetched as the new source of truth.
//  2. Anonymous sessions load the stored guest snapshot, or the built-in
//     defaults when none exists.
//  3. An already-authenticated session simply re-fetches the remote ledger.
//
// Whatever happens, the engine ends in a defined state: all three parts of
// the snapshot are concrete (possibly empty) sequences.
func (e *Engine) Refresh(ctx context.Context) error {
	e.busy.Store(true)
	defer e.busy.Store(false)

	user, err := e.session.CurrentUser(ctx)
	if err != nil {
		// The signal is a black box; failure to resolve means guest.
		slog.Warn("session signal failed, treating as anonymous", "error", err)
		user = nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	authenticated := user != nil
	e.currentUser = user

	switch {
	case authenticated && !e.prevAuthenticated:
		e.loginTransitionLocked(ctx)
	case !authenticated:
		e.loadGuestLocked(ctx)
	default:
		if err := e.fetchRemoteLocked(ctx); err != nil {
			slog.Error("failed to refresh remote ledger", "error", err)
		}
	}

	e.prevAuthenticated = authenticated

	// Defined-state guarantee, regardless of what the paths above did.
	e.ensureConcreteLocked()
	return nil
}

// loginTransitionLocked handles the anonymous -> authenticated switch:
// sync guest data if any, then fetch the remote ledger. Sync failure is
// logged and does not block the fetch; the guest snapshot is retained so
// a later login can retry.
func (e *Engine) loginTransitionLocked(ctx context.Context) {
	if e.syncing.CompareAndSwap(false, true) {
		defer e.syncing.Store(false)
		e.syncGuestDataLocked(ctx)
	} else {
		slog.Warn("guest sync already in progress, skipping")
	}

	if err := e.fetchRemoteLocked(ctx); err != nil {
		slog.Error("failed to fetch remote ledger after login", "error", err)
	}
}

func (e *Engine) syncGuestDataLocked(ctx context.Context) {
	guest, err := e.store.LoadSnapshot(ctx)
	if err != nil {
		slog.Error("failed to load guest snapshot for sync", "error", err)
		return
	}
	if guest == nil || guest.IsEmpty() {
		return
	}

	if err := e.store.RecordSyncAttempt(ctx, time.Now()); err != nil {
		slog.Warn("failed to record sync attempt", "error", err)
	}

	if err := e.gateway.SyncGuestData(ctx, *guest); err != nil {
		// Keep the snapshot so the next login can retry the sync.
		slog.Error("guest data sync failed, retaining local snapshot for retry",
			"accounts", len(guest.Accounts),
			"transactions", len(guest.Transactions),
			"error", err)
		return
	}

	if err := e.store.ClearSnapshot(ctx); err != nil {
		slog.Warn("failed to clear guest snapshot after sync", "error", err)
	}
	slog.Info("guest data synced to remote ledger",
		"accounts", len(guest.Accounts),
		"transactions", len(guest.Transactions))
}

// loadGuestLocked loads the stored guest snapshot, seeding built-in
// defaults for any part that has never been saved.
func (e *Engine) loadGuestLocked(ctx context.Context) {
	snap, err := e.store.LoadSnapshot(ctx)
	if err != nil {
		slog.Error("failed to load guest snapshot, starting from defaults", "error", err)
		snap = nil
	}

	if snap == nil {
		e.accounts = model.DefaultAccounts()
		e.transactions = nil
		e.accountTypes = model.DefaultAccountTypes()
		return
	}

	e.accounts = snap.Accounts
	e.transactions = snap.Transactions
	e.accountTypes = snap.AccountTypes
	if e.accounts == nil {
		e.accounts = model.DefaultAccounts()
	}
	if e.accountTypes == nil {
		e.accountTypes = model.DefaultAccountTypes()
	}
}

// fetchRemoteLocked replaces the in-memory snapshot wholesale with the
// gateway's current state. On failure the last known good state is kept.
func (e *Engine) fetchRemoteLocked(ctx context.Context) error {
	snap, err := e.gateway.FetchSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch remote snapshot: %w", err)
	}
	e.setState(snap)
	return nil
}

func (e *Engine) ensureConcreteLocked() {
	if e.accounts == nil {
		e.accounts = []model.Account{}
	}
	if e.transactions == nil {
		e.transactions = []model.Transaction{}
	}
	if e.accountTypes == nil {
		e.accountTypes = []model.AccountType{}
	}
}
