package model

// LedgerSnapshot is the tuple of accounts, transactions and account types
// the engine holds in memory for the active session.
type LedgerSnapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	AccountTypes []AccountType `json:"accountTypes"`
}

// Normalize replaces nil slices with empty ones so every part of the
// snapshot is always a concrete sequence.
func (s *LedgerSnapshot) Normalize() {
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.AccountTypes == nil {
		s.AccountTypes = []AccountType{}
	}
}

// IsEmpty reports whether the snapshot holds no data at all.
func (s *LedgerSnapshot) IsEmpty() bool {
	return len(s.Accounts) == 0 && len(s.Transactions) == 0 && len(s.AccountTypes) == 0
}
