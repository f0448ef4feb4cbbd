package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType describes the direction of a ledger entry.
type TransactionType string

// Transaction directions.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is one of the known directions.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// CategoryTransfer is the display category assigned to the two entries
// created by a funds transfer. The authoritative transfer marker is the
// Transfer flag on the transaction; the category is kept for display and
// for compatibility with data synced from older clients.
const CategoryTransfer = "Transfer"

// Transaction is a single signed ledger entry. Amount is always positive;
// direction is carried solely by Type.
type Transaction struct {
	ID          string           `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        TransactionType  `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	AccountID   string           `json:"accountId"`
	BalanceAt   *decimal.Decimal `json:"balanceAt,omitempty"`
	Transfer    bool             `json:"transfer,omitempty"`
}

// Effect returns the signed balance impact of the transaction on its
// account: positive for income, negative for expense.
func (t *Transaction) Effect() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// IsTransfer reports whether this entry was generated by a funds transfer.
func (t *Transaction) IsTransfer() bool {
	return t.Transfer
}

// TransactionInput carries the caller-supplied fields for creating or
// replacing a transaction.
type TransactionInput struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// TransferRequest describes a funds transfer between two accounts.
type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description,omitempty"`
}
