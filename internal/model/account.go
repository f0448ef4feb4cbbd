package model

import (
	"github.com/shopspring/decimal"
)

// Account represents one wallet/vault. Balance is the opening balance plus
// the sum of signed effects of every transaction referencing the account.
type Account struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	CardNumber string          `json:"cardNumber,omitempty"`
	CardHolder string          `json:"cardHolder,omitempty"`
	Type       string          `json:"type"`
	Color      string          `json:"color"`
}

// AccountInput carries the caller-supplied fields for creating an account.
// Balance is the opening balance; it is not backed by a transaction.
type AccountInput struct {
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Type       string          `json:"type,omitempty"`
	Color      string          `json:"color,omitempty"`
	CardNumber string          `json:"cardNumber,omitempty"`
	CardHolder string          `json:"cardHolder,omitempty"`
}

// AccountPatch updates individual non-balance fields of an account. Nil
// fields are left untouched. Balance is never patched directly; it only
// moves through transaction and transfer operations.
type AccountPatch struct {
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	Color      *string `json:"color,omitempty"`
	CardNumber *string `json:"cardNumber,omitempty"`
	CardHolder *string `json:"cardHolder,omitempty"`
}

// Apply copies the set fields of the patch onto the account.
func (p AccountPatch) Apply(acc *Account) {
	if p.Name != nil {
		acc.Name = *p.Name
	}
	if p.Type != nil {
		acc.Type = *p.Type
	}
	if p.Color != nil {
		acc.Color = *p.Color
	}
	if p.CardNumber != nil {
		acc.CardNumber = *p.CardNumber
	}
	if p.CardHolder != nil {
		acc.CardHolder = *p.CardHolder
	}
}
