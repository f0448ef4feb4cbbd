package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citrushq/citrus/internal/common"
	"github.com/citrushq/citrus/internal/ledger"
	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
	"github.com/citrushq/citrus/internal/storage"
)

// mockGateway is an in-memory stand-in for the remote ledger service. The
// remote snapshot is mutated directly by the CRUD methods so that the
// engine's fetch-after-mutate cycle observes the change.
type mockGateway struct {
	mu sync.Mutex

	user   *model.UserProfile
	remote model.LedgerSnapshot

	syncErr   error
	mutateErr error
	fetchErr  error

	syncCalls    []model.LedgerSnapshot
	txInputs     []model.TransactionInput
	transferReqs []model.TransferRequest
	calls        []string
}

func (g *mockGateway) record(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, name)
}

func (g *mockGateway) called(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (g *mockGateway) FetchCurrentUser(_ context.Context) (*model.UserProfile, error) {
	g.record("current-user")
	return g.user, nil
}

func (g *mockGateway) SyncGuestData(_ context.Context, snap model.LedgerSnapshot) error {
	g.record("sync")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.syncErr != nil {
		return g.syncErr
	}
	g.syncCalls = append(g.syncCalls, snap)
	g.remote.Accounts = append(g.remote.Accounts, snap.Accounts...)
	g.remote.Transactions = append(g.remote.Transactions, snap.Transactions...)
	g.remote.AccountTypes = append(g.remote.AccountTypes, snap.AccountTypes...)
	return nil
}

func (g *mockGateway) FetchSnapshot(_ context.Context) (*model.LedgerSnapshot, error) {
	g.record("fetch")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	snap := model.LedgerSnapshot{
		Accounts:     append([]model.Account{}, g.remote.Accounts...),
		Transactions: append([]model.Transaction{}, g.remote.Transactions...),
		AccountTypes: append([]model.AccountType{}, g.remote.AccountTypes...),
	}
	return &snap, nil
}

func (g *mockGateway) CreateAccount(_ context.Context, in model.AccountInput) (*model.Account, error) {
	g.record("create-account")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	acc := model.Account{ID: "srv-acc", Name: in.Name, Balance: in.Balance, Type: in.Type, Color: in.Color}
	g.remote.Accounts = append(g.remote.Accounts, acc)
	return &acc, nil
}

func (g *mockGateway) UpdateAccount(_ context.Context, id string, patch model.AccountPatch) (*model.Account, error) {
	g.record("update-account")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	for i := range g.remote.Accounts {
		if g.remote.Accounts[i].ID == id {
			patch.Apply(&g.remote.Accounts[i])
			return &g.remote.Accounts[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (g *mockGateway) DeleteAccount(_ context.Context, id string) error {
	g.record("delete-account")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mutateErr != nil {
		return g.mutateErr
	}
	kept := g.remote.Accounts[:0]
	for _, acc := range g.remote.Accounts {
		if acc.ID != id {
			kept = append(kept, acc)
		}
	}
	g.remote.Accounts = kept
	return nil
}

func (g *mockGateway) CreateTransaction(_ context.Context, in model.TransactionInput) (*model.Transaction, error) {
	g.record("create-transaction")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.txInputs = append(g.txInputs, in)
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	txn := model.Transaction{ID: "srv-tx", Amount: in.Amount, Type: in.Type, AccountID: in.AccountID}
	g.remote.Transactions = append(g.remote.Transactions, txn)
	return &txn, nil
}

func (g *mockGateway) UpdateTransaction(_ context.Context, _ string, _ model.TransactionInput) (*model.Transaction, error) {
	g.record("update-transaction")
	return nil, g.mutateErr
}

func (g *mockGateway) DeleteTransaction(_ context.Context, _ string) error {
	g.record("delete-transaction")
	return g.mutateErr
}

func (g *mockGateway) BulkDeleteTransactions(_ context.Context, _ []string) error {
	g.record("bulk-delete")
	return g.mutateErr
}

func (g *mockGateway) DeleteAllTransactions(_ context.Context) error {
	g.record("delete-all")
	return g.mutateErr
}

func (g *mockGateway) TransferFunds(_ context.Context, req model.TransferRequest) error {
	g.record("transfer")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transferReqs = append(g.transferReqs, req)
	return g.mutateErr
}

func (g *mockGateway) CreateAccountType(_ context.Context, label string, theme model.Theme) (*model.AccountType, error) {
	g.record("create-type")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mutateErr != nil {
		return nil, g.mutateErr
	}
	at := model.AccountType{ID: "srv-type", Label: label, Theme: theme}
	g.remote.AccountTypes = append(g.remote.AccountTypes, at)
	return &at, nil
}

func (g *mockGateway) DeleteAccountType(_ context.Context, _ string) error {
	g.record("delete-type")
	return g.mutateErr
}

func (g *mockGateway) ResetAllData(_ context.Context) error {
	g.record("reset")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mutateErr != nil {
		return g.mutateErr
	}
	g.remote = model.LedgerSnapshot{}
	return nil
}

// stubSession returns a fixed user, or an error when set.
type stubSession struct {
	user *model.UserProfile
	err  error
}

func (s *stubSession) CurrentUser(_ context.Context) (*model.UserProfile, error) {
	return s.user, s.err
}

func newTestStore(t *testing.T) *storage.GuestStore {
	t.Helper()
	store, err := storage.NewGuestStore(filepath.Join(t.TempDir(), "citrus.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// newGuestEngine returns an engine refreshed into guest mode.
func newGuestEngine(t *testing.T) (*ledger.Engine, *mockGateway, *storage.GuestStore) {
	t.Helper()
	store := newTestStore(t)
	gw := &mockGateway{}
	eng := ledger.New(store, gw, &stubSession{})
	require.NoError(t, eng.Refresh(context.Background()))
	return eng, gw, store
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// seedAccount creates an account with an opening balance and returns its id.
func seedAccount(t *testing.T, eng *ledger.Engine, name string, balance int64) string {
	t.Helper()
	status, err := eng.AddAccount(context.Background(), model.AccountInput{
		Name:    name,
		Balance: dec(balance),
		Type:    "Current",
		Color:   "blue",
	})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	for _, acc := range eng.Accounts() {
		if acc.Name == name {
			return acc.ID
		}
	}
	t.Fatalf("account %q not found after creation", name)
	return ""
}

func accountBalance(t *testing.T, eng *ledger.Engine, id string) decimal.Decimal {
	t.Helper()
	for _, acc := range eng.Accounts() {
		if acc.ID == id {
			return acc.Balance
		}
	}
	t.Fatalf("account %q not found", id)
	return decimal.Zero
}

func TestGuestDefaultsSeeded(t *testing.T) {
	eng, _, _ := newGuestEngine(t)

	accounts := eng.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, "Family Vault", accounts[0].Name)
	assert.True(t, accounts[0].Balance.IsZero())

	types := eng.AccountTypes()
	require.Len(t, types, 4)
	assert.Equal(t, "Family", types[0].Label)

	assert.Empty(t, eng.Transactions())
	assert.Nil(t, eng.CurrentUser())
}

func TestAddAccountDefaults(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()

	id := seedAccount(t, eng, "Holiday Fund", 250)

	var acc model.Account
	for _, a := range eng.Accounts() {
		if a.ID == id {
			acc = a
		}
	}
	assert.True(t, strings.HasPrefix(acc.ID, "acc-"))
	assert.True(t, strings.HasPrefix(acc.CardNumber, "**** **** **** "))
	assert.Equal(t, "GUEST USER", acc.CardHolder)
	assert.True(t, acc.Balance.Equal(dec(250)))

	_, err := eng.AddAccount(ctx, model.AccountInput{Name: "   "})
	assert.ErrorIs(t, err, common.ErrEmptyName)
}

func TestAddTransactionAdjustsBalance(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	id := seedAccount(t, eng, "Wallet", 100)

	status, err := eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(50), Type: model.TypeIncome, Category: "Salary",
	})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)
	assert.True(t, accountBalance(t, eng, id).Equal(dec(150)))

	status, err = eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(30), Type: model.TypeExpense, Category: "Food",
	})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)
	assert.True(t, accountBalance(t, eng, id).Equal(dec(120)))

	// Newest first, with a post-transaction balance snapshot.
	txns := eng.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "Food", txns[0].Category)
	require.NotNil(t, txns[0].BalanceAt)
	assert.True(t, txns[0].BalanceAt.Equal(dec(120)))
}

func TestAddTransactionValidation(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	id := seedAccount(t, eng, "Wallet", 0)

	_, err := eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(10), Type: "refund",
	})
	assert.ErrorIs(t, err, common.ErrInvalidType)

	_, err = eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(0), Type: model.TypeIncome,
	})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(-5), Type: model.TypeIncome,
	})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	status, err := eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: "acc-missing", Amount: dec(10), Type: model.TypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, service.StatusNotFound, status)
	assert.True(t, accountBalance(t, eng, id).IsZero())
}

func TestUpdateTransactionSameDataLeavesBalance(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	id := seedAccount(t, eng, "Wallet", 100)

	in := model.TransactionInput{AccountID: id, Amount: dec(40), Type: model.TypeExpense, Category: "Rent"}
	_, err := eng.AddTransaction(ctx, in)
	require.NoError(t, err)
	txID := eng.Transactions()[0].ID

	status, err := eng.UpdateTransaction(ctx, txID, in)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)
	assert.True(t, accountBalance(t, eng, id).Equal(dec(60)))
}

func TestUpdateTransactionReassignsAccount(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	acc1 := seedAccount(t, eng, "One", 100)
	acc2 := seedAccount(t, eng, "Two", 50)

	_, err := eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: acc1, Amount: dec(50), Type: model.TypeExpense,
	})
	require.NoError(t, err)
	require.True(t, accountBalance(t, eng, acc1).Equal(dec(50)))
	txID := eng.Transactions()[0].ID

	status, err := eng.UpdateTransaction(ctx, txID, model.TransactionInput{
		AccountID: acc2, Amount: dec(30), Type: model.TypeIncome,
	})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	assert.True(t, accountBalance(t, eng, acc1).Equal(dec(100)), "old effect reversed on old account")
	assert.True(t, accountBalance(t, eng, acc2).Equal(dec(80)), "new effect applied on new account")

	txns := eng.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, txID, txns[0].ID, "identity survives update")
	assert.Equal(t, acc2, txns[0].AccountID)
}

func TestUpdateTransactionMissingIsNoop(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	id := seedAccount(t, eng, "Wallet", 100)

	status, err := eng.UpdateTransaction(context.Background(), "tx-missing", model.TransactionInput{
		AccountID: id, Amount: dec(10), Type: model.TypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, service.StatusNotFound, status)
	assert.True(t, accountBalance(t, eng, id).Equal(dec(100)))
}

func TestDeleteTransactionReversesEffect(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	id := seedAccount(t, eng, "Wallet", 100)

	_, err := eng.AddTransaction(ctx, model.TransactionInput{
		AccountID: id, Amount: dec(25), Type: model.TypeExpense,
	})
	require.NoError(t, err)
	txID := eng.Transactions()[0].ID

	status, err := eng.DeleteTransaction(ctx, txID)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)
	assert.True(t, accountBalance(t, eng, id).Equal(dec(100)))
	assert.Empty(t, eng.Transactions())
}

func TestDeleteAccountCascades(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	keep := seedAccount(t, eng, "Keep", 0)
	drop := seedAccount(t, eng, "Drop", 0)

	for _, accID := range []string{keep, drop, drop} {
		_, err := eng.AddTransaction(ctx, model.TransactionInput{
			AccountID: accID, Amount: dec(10), Type: model.TypeIncome,
		})
		require.NoError(t, err)
	}

	status, err := eng.DeleteAccount(ctx, drop)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	for _, txn := range eng.Transactions() {
		assert.NotEqual(t, drop, txn.AccountID)
	}
	assert.Len(t, eng.Transactions(), 1)
	assert.True(t, accountBalance(t, eng, keep).Equal(dec(10)))
}

func TestBulkDeleteMatchesSequentialDeletes(t *testing.T) {
	ctx := context.Background()

	build := func(t *testing.T) (*ledger.Engine, string, []string) {
		eng, _, _ := newGuestEngine(t)
		id := seedAccount(t, eng, "Wallet", 100)
		inputs := []model.TransactionInput{
			{AccountID: id, Amount: dec(10), Type: model.TypeIncome},
			{AccountID: id, Amount: dec(20), Type: model.TypeExpense},
			{AccountID: id, Amount: dec(5), Type: model.TypeIncome},
		}
		ids := make([]string, 0, len(inputs))
		for _, in := range inputs {
			_, err := eng.AddTransaction(ctx, in)
			require.NoError(t, err)
			ids = append(ids, eng.Transactions()[0].ID)
		}
		return eng, id, ids
	}

	bulk, bulkAcc, bulkIDs := build(t)
	status, err := bulk.BulkDeleteTransactions(ctx, []string{bulkIDs[2], bulkIDs[0]})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	seq, seqAcc, seqIDs := build(t)
	for _, txID := range []string{seqIDs[0], seqIDs[2]} {
		_, err := seq.DeleteTransaction(ctx, txID)
		require.NoError(t, err)
	}

	assert.True(t, accountBalance(t, bulk, bulkAcc).Equal(accountBalance(t, seq, seqAcc)))
	assert.Len(t, bulk.Transactions(), 1)

	status, err = bulk.BulkDeleteTransactions(ctx, []string{"tx-missing"})
	require.NoError(t, err)
	assert.Equal(t, service.StatusNoop, status)

	// Mixed existing and missing ids: only the existing entry goes.
	before := len(bulk.Transactions())
	status, err = bulk.BulkDeleteTransactions(ctx, []string{bulkIDs[1], "tx-missing"})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)
	assert.Equal(t, before-1, len(bulk.Transactions()))
	assert.True(t, accountBalance(t, bulk, bulkAcc).Equal(dec(100)))
}

func TestDeleteAllTransactionsRestoresOpeningBalances(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	acc1 := seedAccount(t, eng, "One", 100)
	acc2 := seedAccount(t, eng, "Two", 200)

	_, err := eng.AddTransaction(ctx, model.TransactionInput{AccountID: acc1, Amount: dec(30), Type: model.TypeIncome})
	require.NoError(t, err)
	_, err = eng.AddTransaction(ctx, model.TransactionInput{AccountID: acc2, Amount: dec(70), Type: model.TypeExpense})
	require.NoError(t, err)

	status, err := eng.DeleteAllTransactions(ctx)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	assert.Empty(t, eng.Transactions())
	assert.True(t, accountBalance(t, eng, acc1).Equal(dec(100)))
	assert.True(t, accountBalance(t, eng, acc2).Equal(dec(200)))
}

func TestTransferFunds(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	src := seedAccount(t, eng, "Source", 100)
	dst := seedAccount(t, eng, "Target", 10)

	err := eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: src, TargetAccountID: dst, Amount: dec(40),
	})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, eng, src).Equal(dec(60)))
	assert.True(t, accountBalance(t, eng, dst).Equal(dec(50)))

	txns := eng.Transactions()
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.True(t, txn.IsTransfer())
		assert.Equal(t, model.CategoryTransfer, txn.Category)
		assert.True(t, txn.Amount.Equal(dec(40)))
	}
	assert.Equal(t, model.TypeExpense, txns[0].Type)
	assert.Equal(t, src, txns[0].AccountID)
	assert.Equal(t, "Transfer to Target", txns[0].Description)
	assert.Equal(t, model.TypeIncome, txns[1].Type)
	assert.Equal(t, dst, txns[1].AccountID)
	assert.Equal(t, "Transfer from Source", txns[1].Description)
}

func TestTransferFundsValidation(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	src := seedAccount(t, eng, "Source", 100)
	dst := seedAccount(t, eng, "Target", 0)

	err := eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: src, TargetAccountID: dst, Amount: dec(0),
	})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	err = eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: src, TargetAccountID: src, Amount: dec(10),
	})
	assert.ErrorIs(t, err, common.ErrSameAccount)

	err = eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: src, TargetAccountID: "acc-missing", Amount: dec(10),
	})
	assert.ErrorIs(t, err, common.ErrAccountNotFound)

	assert.True(t, accountBalance(t, eng, src).Equal(dec(100)))
	assert.Empty(t, eng.Transactions())
}

func TestAccountTypes(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()

	status, err := eng.AddAccountType(ctx, "  Crypto  ", model.ThemePurple)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	types := eng.AccountTypes()
	require.Len(t, types, 5)
	added := types[4]
	assert.Equal(t, "Crypto", added.Label)
	assert.True(t, strings.HasPrefix(added.ID, "type-"))

	_, err = eng.AddAccountType(ctx, "", model.ThemeBlue)
	assert.ErrorIs(t, err, common.ErrEmptyLabel)
	_, err = eng.AddAccountType(ctx, "Bad", "magenta")
	assert.ErrorIs(t, err, common.ErrInvalidTheme)

	// Built-in types never go away.
	status, err = eng.DeleteAccountType(ctx, model.DefaultTypeFamily)
	require.NoError(t, err)
	assert.Equal(t, service.StatusNoop, status)
	assert.Len(t, eng.AccountTypes(), 5)

	status, err = eng.DeleteAccountType(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusApplied, status)
	assert.Len(t, eng.AccountTypes(), 4)
}

func TestResetClearsToEmpty(t *testing.T) {
	eng, _, store := newGuestEngine(t)
	ctx := context.Background()
	id := seedAccount(t, eng, "Wallet", 100)
	_, err := eng.AddTransaction(ctx, model.TransactionInput{AccountID: id, Amount: dec(10), Type: model.TypeIncome})
	require.NoError(t, err)

	status, err := eng.ResetAllData(ctx)
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	assert.Empty(t, eng.Accounts())
	assert.Empty(t, eng.Transactions())
	assert.Empty(t, eng.AccountTypes())

	// A reset ledger stays empty across refreshes; defaults only seed a
	// ledger that has never been saved.
	require.NoError(t, eng.Refresh(ctx))
	assert.Empty(t, eng.Accounts())

	snap, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Accounts)
}

func TestGuestStatePersistsAcrossEngines(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := ledger.New(store, &mockGateway{}, &stubSession{})
	require.NoError(t, first.Refresh(ctx))
	status, err := first.AddAccount(ctx, model.AccountInput{Name: "Durable", Balance: dec(77)})
	require.NoError(t, err)
	require.Equal(t, service.StatusApplied, status)

	second := ledger.New(store, &mockGateway{}, &stubSession{})
	require.NoError(t, second.Refresh(ctx))

	var found bool
	for _, acc := range second.Accounts() {
		if acc.Name == "Durable" {
			found = true
			assert.True(t, acc.Balance.Equal(dec(77)))
		}
	}
	assert.True(t, found, "account survives engine restart")
}

func TestBalanceConservation(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()
	acc1 := seedAccount(t, eng, "One", 500)
	acc2 := seedAccount(t, eng, "Two", 300)

	opening := dec(800)

	// Transfers move money around without changing the total.
	require.NoError(t, eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: acc1, TargetAccountID: acc2, Amount: dec(120),
	}))
	require.NoError(t, eng.TransferFunds(ctx, model.TransferRequest{
		SourceAccountID: acc2, TargetAccountID: acc1, Amount: dec(45),
	}))

	total := decimal.Zero
	for _, acc := range eng.Accounts() {
		total = total.Add(acc.Balance)
	}
	assert.True(t, total.Equal(opening), "total = %s", total)

	// Non-transfer entries change the total by exactly their summed effect.
	_, err := eng.AddTransaction(ctx, model.TransactionInput{AccountID: acc1, Amount: dec(60), Type: model.TypeIncome})
	require.NoError(t, err)
	_, err = eng.AddTransaction(ctx, model.TransactionInput{AccountID: acc2, Amount: dec(25), Type: model.TypeExpense})
	require.NoError(t, err)

	total = decimal.Zero
	for _, acc := range eng.Accounts() {
		total = total.Add(acc.Balance)
	}
	assert.True(t, total.Equal(dec(835)))
}

func TestCurrencyPreference(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	ctx := context.Background()

	symbol, err := eng.Currency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rs.", symbol)

	require.NoError(t, eng.SetCurrency(ctx, "$"))
	symbol, err = eng.Currency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$", symbol)
}

var errBoom = errors.New("boom")

func TestSnapshotReturnsCopies(t *testing.T) {
	eng, _, _ := newGuestEngine(t)
	id := seedAccount(t, eng, "Wallet", 100)

	accounts := eng.Accounts()
	for i := range accounts {
		accounts[i].Balance = dec(999999)
	}
	assert.True(t, accountBalance(t, eng, id).Equal(dec(100)))

	snap := eng.Snapshot()
	snap.Accounts[0].Name = "mutated"
	assert.NotEqual(t, "mutated", eng.Accounts()[0].Name)
}
