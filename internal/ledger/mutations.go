package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citrushq/citrus/internal/common"
	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
)

// Every mutation follows the same pattern: the guest path applies the
// balance arithmetic to the in-memory snapshot and persists it to the
// guest store; the remote path forwards the request to the gateway and
// re-fetches the full remote snapshot, since the remote service is
// authoritative for balances. Remote failures are logged and leave the
// in-memory snapshot at its last known good state; only TransferFunds
// propagates the error to its caller.

// remoteMutateLocked runs a gateway call and re-synchronizes from the
// remote ledger. Callers must hold e.mu.
func (e *Engine) remoteMutateLocked(ctx context.Context, op string, call func() error) service.Status {
	if err := call(); err != nil {
		slog.Error("remote mutation failed", "op", op, "error", err)
		return service.StatusFailed
	}
	if err := e.fetchRemoteLocked(ctx); err != nil {
		slog.Error("failed to re-fetch after remote mutation", "op", op, "error", err)
	}
	return service.StatusApplied
}

// AddAccount creates an account with the given opening balance. The
// opening balance is not backed by a transaction.
func (e *Engine) AddAccount(ctx context.Context, in model.AccountInput) (service.Status, error) {
	if strings.TrimSpace(in.Name) == "" {
		return service.StatusNoop, common.ErrEmptyName
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "add account", func() error {
			_, err := e.gateway.CreateAccount(ctx, in)
			return err
		}), nil
	}

	acc := model.Account{
		ID:         "acc-" + uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Balance:    in.Balance,
		CardNumber: in.CardNumber,
		CardHolder: in.CardHolder,
		Type:       in.Type,
		Color:      in.Color,
	}
	if acc.CardNumber == "" {
		acc.CardNumber = fmt.Sprintf("**** **** **** %04d", 1000+rand.Intn(9000))
	}
	if acc.CardHolder == "" {
		acc.CardHolder = "GUEST USER"
	}

	e.accounts = append(e.accounts, acc)
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// UpdateAccount patches the given non-balance fields. A missing target is
// a silent no-op in guest mode, reported through the status.
func (e *Engine) UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "update account", func() error {
			_, err := e.gateway.UpdateAccount(ctx, id, patch)
			return err
		}), nil
	}

	i := e.findAccount(id)
	if i < 0 {
		return service.StatusNotFound, nil
	}
	patch.Apply(&e.accounts[i])
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// DeleteAccount removes an account and cascades to every transaction
// referencing it.
func (e *Engine) DeleteAccount(ctx context.Context, id string) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "delete account", func() error {
			return e.gateway.DeleteAccount(ctx, id)
		}), nil
	}

	i := e.findAccount(id)
	if i < 0 {
		return service.StatusNotFound, nil
	}
	e.accounts = append(e.accounts[:i], e.accounts[i+1:]...)

	kept := e.transactions[:0]
	for _, txn := range e.transactions {
		if txn.AccountID != id {
			kept = append(kept, txn)
		}
	}
	e.transactions = kept

	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// AddTransaction records a new ledger entry and applies its signed effect
// to the owning account's balance.
func (e *Engine) AddTransaction(ctx context.Context, in model.TransactionInput) (service.Status, error) {
	if !in.Type.Valid() {
		return service.StatusNoop, common.ErrInvalidType
	}
	if !in.Amount.IsPositive() {
		return service.StatusNoop, common.ErrInvalidAmount
	}
	// Date defaults to now on both paths; the remote service stores what
	// it is given.
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "add transaction", func() error {
			_, err := e.gateway.CreateTransaction(ctx, in)
			return err
		}), nil
	}

	i := e.findAccount(in.AccountID)
	if i < 0 {
		return service.StatusNotFound, nil
	}

	txn := model.Transaction{
		ID:          "tx-" + uuid.NewString(),
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		AccountID:   in.AccountID,
	}

	e.accounts[i].Balance = e.accounts[i].Balance.Add(txn.Effect())
	balance := e.accounts[i].Balance
	txn.BalanceAt = &balance

	e.transactions = append([]model.Transaction{txn}, e.transactions...)
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// UpdateTransaction reverses the old entry's effect on its old account,
// applies the new entry's effect on its (possibly different) new account,
// then replaces the record. A missing target is a no-op.
func (e *Engine) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (service.Status, error) {
	if !in.Type.Valid() {
		return service.StatusNoop, common.ErrInvalidType
	}
	if !in.Amount.IsPositive() {
		return service.StatusNoop, common.ErrInvalidAmount
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "update transaction", func() error {
			_, err := e.gateway.UpdateTransaction(ctx, id, in)
			return err
		}), nil
	}

	idx := e.findTransaction(id)
	if idx < 0 {
		return service.StatusNotFound, nil
	}
	old := e.transactions[idx]

	// Order matters: reverse first, in case old and new share the account.
	e.applyEffect(old.AccountID, old.Effect().Neg())

	next := model.Transaction{
		ID:          old.ID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		AccountID:   in.AccountID,
		Transfer:    old.Transfer,
	}
	if next.Date.IsZero() {
		next.Date = old.Date
	}
	e.applyEffect(next.AccountID, next.Effect())

	e.transactions[idx] = next
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// DeleteTransaction reverses the entry's effect on its account before
// removing it.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "delete transaction", func() error {
			return e.gateway.DeleteTransaction(ctx, id)
		}), nil
	}

	idx := e.findTransaction(id)
	if idx < 0 {
		return service.StatusNotFound, nil
	}
	txn := e.transactions[idx]

	e.applyEffect(txn.AccountID, txn.Effect().Neg())
	e.transactions = append(e.transactions[:idx], e.transactions[idx+1:]...)

	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// BulkDeleteTransactions deletes every transaction in the id set,
// reversing each entry's effect. The final balances are independent of
// processing order because effects commute.
func (e *Engine) BulkDeleteTransactions(ctx context.Context, ids []string) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "bulk delete transactions", func() error {
			return e.gateway.BulkDeleteTransactions(ctx, ids)
		}), nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	kept := e.transactions[:0]
	removed := 0
	for _, txn := range e.transactions {
		if _, ok := wanted[txn.ID]; ok {
			e.applyEffect(txn.AccountID, txn.Effect().Neg())
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	e.transactions = kept

	if removed == 0 {
		return service.StatusNoop, nil
	}
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// DeleteAllTransactions reverses every entry's effect and clears the
// transaction list. Opening balances remain.
func (e *Engine) DeleteAllTransactions(ctx context.Context) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "delete all transactions", func() error {
			return e.gateway.DeleteAllTransactions(ctx)
		}), nil
	}

	for _, txn := range e.transactions {
		e.applyEffect(txn.AccountID, txn.Effect().Neg())
	}
	e.transactions = []model.Transaction{}

	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// TransferFunds moves an amount between two accounts by creating a linked
// expense/income pair flagged as a transfer. Unlike other mutations, a
// remote failure is returned to the caller so it can be surfaced.
func (e *Engine) TransferFunds(ctx context.Context, req model.TransferRequest) error {
	if !req.Amount.IsPositive() {
		return common.ErrInvalidAmount
	}
	if req.SourceAccountID == req.TargetAccountID {
		return common.ErrSameAccount
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		if err := e.gateway.TransferFunds(ctx, req); err != nil {
			slog.Error("transfer failed", "error", err)
			return err
		}
		if err := e.fetchRemoteLocked(ctx); err != nil {
			slog.Error("failed to re-fetch after transfer", "error", err)
		}
		return nil
	}

	src := e.findAccount(req.SourceAccountID)
	dst := e.findAccount(req.TargetAccountID)
	if src < 0 || dst < 0 {
		return common.ErrAccountNotFound
	}

	outDesc := req.Description
	if outDesc == "" {
		outDesc = "Transfer to " + e.accounts[dst].Name
	}
	inDesc := req.Description
	if inDesc == "" {
		inDesc = "Transfer from " + e.accounts[src].Name
	}

	expense := model.Transaction{
		ID:          "tx-" + uuid.NewString(),
		Amount:      req.Amount,
		Type:        model.TypeExpense,
		Category:    model.CategoryTransfer,
		Description: outDesc,
		Date:        req.Date,
		AccountID:   req.SourceAccountID,
		Transfer:    true,
	}
	income := model.Transaction{
		ID:          "tx-" + uuid.NewString(),
		Amount:      req.Amount,
		Type:        model.TypeIncome,
		Category:    model.CategoryTransfer,
		Description: inDesc,
		Date:        req.Date,
		AccountID:   req.TargetAccountID,
		Transfer:    true,
	}

	e.transactions = append([]model.Transaction{expense, income}, e.transactions...)
	e.accounts[src].Balance = e.accounts[src].Balance.Sub(req.Amount)
	e.accounts[dst].Balance = e.accounts[dst].Balance.Add(req.Amount)

	e.persistGuest(ctx)
	return nil
}

// AddAccountType appends a new custom account type.
func (e *Engine) AddAccountType(ctx context.Context, label string, theme model.Theme) (service.Status, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return service.StatusNoop, common.ErrEmptyLabel
	}
	if !theme.Valid() {
		return service.StatusNoop, common.ErrInvalidTheme
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "add account type", func() error {
			_, err := e.gateway.CreateAccountType(ctx, label, theme)
			return err
		}), nil
	}

	e.accountTypes = append(e.accountTypes, model.AccountType{
		ID:    "type-" + uuid.NewString(),
		Label: label,
		Theme: theme,
	})
	e.persistGuest(ctx)
	return service.StatusApplied, nil
}

// DeleteAccountType removes a custom account type. Built-in types are
// immutable; deleting one is a no-op. Accounts carrying the type's label
// are left untouched.
func (e *Engine) DeleteAccountType(ctx context.Context, id string) (service.Status, error) {
	if model.IsDefaultTypeID(id) {
		return service.StatusNoop, nil
	}

	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "delete account type", func() error {
			return e.gateway.DeleteAccountType(ctx, id)
		}), nil
	}

	for i := range e.accountTypes {
		if e.accountTypes[i].ID == id {
			e.accountTypes = append(e.accountTypes[:i], e.accountTypes[i+1:]...)
			e.persistGuest(ctx)
			return service.StatusApplied, nil
		}
	}
	return service.StatusNotFound, nil
}

// ResetAllData clears the entire ledger. Guest mode clears to empty, not
// back to the built-in defaults.
func (e *Engine) ResetAllData(ctx context.Context) (service.Status, error) {
	e.busy.Store(true)
	defer e.busy.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated() {
		return e.remoteMutateLocked(ctx, "reset all data", func() error {
			return e.gateway.ResetAllData(ctx)
		}), nil
	}

	e.accounts = []model.Account{}
	e.transactions = []model.Transaction{}
	e.accountTypes = []model.AccountType{}

	e.persistGuest(ctx)
	return service.StatusApplied, nil
}
