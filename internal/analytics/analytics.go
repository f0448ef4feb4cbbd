// Package analytics computes read-only projections of a ledger snapshot.
// Every function is pure: results depend only on the snapshot and the
// reference time passed in, which keeps the calculations testable against
// fixed dates.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus/internal/model"
)

// Summary aggregates the headline figures for the current calendar month.
// Transfer entries are excluded from income and expenses so moving money
// between accounts is never double-counted.
type Summary struct {
	TotalBalance    decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
}

// SavingsRate returns the fraction of monthly income not spent, in
// percent. Zero income yields a zero rate.
func (s Summary) SavingsRate() decimal.Decimal {
	if s.MonthlyIncome.IsZero() {
		return decimal.Zero
	}
	return s.MonthlyIncome.Sub(s.MonthlyExpenses).
		Div(s.MonthlyIncome).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}

// Summarize computes the total balance across all accounts and the
// income/expense totals for the calendar month containing now.
func Summarize(snap model.LedgerSnapshot, now time.Time) Summary {
	summary := Summary{
		TotalBalance:    decimal.Zero,
		MonthlyIncome:   decimal.Zero,
		MonthlyExpenses: decimal.Zero,
	}

	for _, acc := range snap.Accounts {
		summary.TotalBalance = summary.TotalBalance.Add(acc.Balance)
	}

	for _, txn := range snap.Transactions {
		if txn.IsTransfer() {
			continue
		}
		if txn.Date.Year() != now.Year() || txn.Date.Month() != now.Month() {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			summary.MonthlyIncome = summary.MonthlyIncome.Add(txn.Amount)
		case model.TypeExpense:
			summary.MonthlyExpenses = summary.MonthlyExpenses.Add(txn.Amount)
		}
	}

	return summary
}

// DayPoint is one day of the daily income/expense series.
type DayPoint struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// DailySeries returns per-day income and expense totals for the window of
// days ending today (relative to now). Transfer entries are excluded.
func DailySeries(transactions []model.Transaction, days int, now time.Time) []DayPoint {
	if days <= 0 {
		return []DayPoint{}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	series := make([]DayPoint, days)
	for i := range series {
		series[i] = DayPoint{
			Date:     start.AddDate(0, 0, i),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, txn := range transactions {
		if txn.IsTransfer() {
			continue
		}
		offset := daysBetween(start, txn.Date)
		if offset < 0 || offset >= days {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			series[offset].Income = series[offset].Income.Add(txn.Amount)
		case model.TypeExpense:
			series[offset].Expenses = series[offset].Expenses.Add(txn.Amount)
		}
	}

	return series
}

// daysBetween returns the number of calendar days from a's day to b's
// day. Both are normalized to UTC midnights first so that DST
// transitions, which make local days 23 or 25 hours long, cannot shift
// an entry into a neighboring bucket.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// CategoryBreakdown returns expense totals per category for the calendar
// month containing now, excluding transfer entries.
func CategoryBreakdown(transactions []model.Transaction, now time.Time) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)

	for _, txn := range transactions {
		if txn.IsTransfer() || txn.Type != model.TypeExpense {
			continue
		}
		if txn.Date.Year() != now.Year() || txn.Date.Month() != now.Month() {
			continue
		}
		category := txn.Category
		if category == "" {
			category = "Other"
		}
		breakdown[category] = breakdown[category].Add(txn.Amount)
	}

	return breakdown
}
