package model

import "github.com/shopspring/decimal"

// Identifiers of the built-in account types. These exist only in guest
// mode and cannot be deleted there.
const (
	DefaultTypeFamily  = "type-1"
	DefaultTypeSalary  = "type-2"
	DefaultTypeCurrent = "type-3"
	DefaultTypeSavings = "type-4"
)

// IsDefaultTypeID reports whether the id belongs to a built-in account type.
func IsDefaultTypeID(id string) bool {
	switch id {
	case DefaultTypeFamily, DefaultTypeSalary, DefaultTypeCurrent, DefaultTypeSavings:
		return true
	}
	return false
}

// DefaultAccountTypes returns a fresh copy of the built-in account types.
func DefaultAccountTypes() []AccountType {
	return []AccountType{
		{ID: DefaultTypeFamily, Label: "Family", Theme: ThemeIndigo},
		{ID: DefaultTypeSalary, Label: "Salary", Theme: ThemeEmerald},
		{ID: DefaultTypeCurrent, Label: "Current", Theme: ThemeBlue},
		{ID: DefaultTypeSavings, Label: "Savings", Theme: ThemeOrange},
	}
}

// DefaultAccounts returns a fresh copy of the starter vaults used to seed
// an empty guest ledger.
func DefaultAccounts() []Account {
	return []Account{
		{
			ID:         "acc-1",
			Name:       "Family Vault",
			Balance:    decimal.Zero,
			CardNumber: "**** **** **** 1001",
			CardHolder: "CITRUS",
			Type:       "Family",
			Color:      "indigo",
		},
		{
			ID:         "acc-2",
			Name:       "Salary Account",
			Balance:    decimal.Zero,
			CardNumber: "**** **** **** 2002",
			CardHolder: "CITRUS",
			Type:       "Salary",
			Color:      "emerald",
		},
		{
			ID:         "acc-3",
			Name:       "Current Account",
			Balance:    decimal.Zero,
			CardNumber: "**** **** **** 3003",
			CardHolder: "CITRUS",
			Type:       "Current",
			Color:      "blue",
		},
		{
			ID:         "acc-4",
			Name:       "Savings Goal",
			Balance:    decimal.Zero,
			CardNumber: "**** **** **** 4004",
			CardHolder: "CITRUS",
			Type:       "Savings",
			Color:      "orange",
		},
	}
}
