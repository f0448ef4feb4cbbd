package gateway

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus/internal/model"
)

// The remote service stores documents with a server-assigned _id alongside
// any client-assigned id. Both refer to the same logical entity; the wire
// types collapse them into one canonical identifier before anything
// downstream sees the data.

type wireSnapshot struct {
	Accounts     []wireAccount     `json:"accounts"`
	Transactions []wireTransaction `json:"transactions"`
	AccountTypes []wireAccountType `json:"accountTypes"`
}

func (w *wireSnapshot) toModel() *model.LedgerSnapshot {
	snap := &model.LedgerSnapshot{
		Accounts:     make([]model.Account, 0, len(w.Accounts)),
		Transactions: make([]model.Transaction, 0, len(w.Transactions)),
		AccountTypes: make([]model.AccountType, 0, len(w.AccountTypes)),
	}
	for _, acc := range w.Accounts {
		snap.Accounts = append(snap.Accounts, acc.toModel())
	}
	for _, txn := range w.Transactions {
		snap.Transactions = append(snap.Transactions, txn.toModel())
	}
	for _, at := range w.AccountTypes {
		snap.AccountTypes = append(snap.AccountTypes, at.toModel())
	}
	return snap
}

type wireAccount struct {
	ServerID   string          `json:"_id,omitempty"`
	ClientID   string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	CardNumber string          `json:"cardNumber,omitempty"`
	CardHolder string          `json:"cardHolder,omitempty"`
	Type       string          `json:"type"`
	Color      string          `json:"color"`
}

func (w *wireAccount) toModel() model.Account {
	return model.Account{
		ID:         canonicalID(w.ServerID, w.ClientID),
		Name:       w.Name,
		Balance:    w.Balance,
		CardNumber: w.CardNumber,
		CardHolder: w.CardHolder,
		Type:       w.Type,
		Color:      w.Color,
	}
}

type wireTransaction struct {
	ServerID    string                `json:"_id,omitempty"`
	ClientID    string                `json:"id,omitempty"`
	Amount      decimal.Decimal       `json:"amount"`
	Type        model.TransactionType `json:"type"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	AccountID   string                `json:"accountId"`
	BalanceAt   *decimal.Decimal      `json:"balanceAt,omitempty"`
	Transfer    bool                  `json:"transfer,omitempty"`
}

func (w *wireTransaction) toModel() model.Transaction {
	txn := model.Transaction{
		ID:          canonicalID(w.ServerID, w.ClientID),
		Amount:      w.Amount,
		Type:        w.Type,
		Category:    w.Category,
		Description: w.Description,
		Date:        w.Date,
		AccountID:   w.AccountID,
		BalanceAt:   w.BalanceAt,
		Transfer:    w.Transfer,
	}
	// Older clients mark transfers only by category; promote to the flag
	// here so the rest of the application never string-matches.
	if !txn.Transfer && txn.Category == model.CategoryTransfer {
		txn.Transfer = true
	}
	return txn
}

type wireAccountType struct {
	ServerID string      `json:"_id,omitempty"`
	ClientID string      `json:"id,omitempty"`
	Label    string      `json:"label"`
	Theme    model.Theme `json:"theme"`
}

func (w *wireAccountType) toModel() model.AccountType {
	return model.AccountType{
		ID:    canonicalID(w.ServerID, w.ClientID),
		Label: w.Label,
		Theme: w.Theme,
	}
}

// canonicalID prefers the server-assigned identifier once one exists.
func canonicalID(serverID, clientID string) string {
	if serverID != "" {
		return serverID
	}
	return clientID
}
