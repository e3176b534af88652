// Package ledger derives every summary figure from a point-in-time snapshot
// of the transaction log, the savings balance and the card registry.
//
// Nothing here touches storage or keeps state between calls: each function
// recomputes its result from the rows it is given, and an empty snapshot
// always yields zero values rather than an error.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
)

// Snapshot is a consistent view of the durable state.
type Snapshot struct {
	Transactions []models.Transaction
	Savings      decimal.Decimal
	Cards        []models.CreditCard
}

// Totals sums transaction amounts per type.
type Totals struct {
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Repayment decimal.Decimal `json:"repayment"`
}

// Of returns the total for a single type.
func (t Totals) Of(txType models.TransactionType) decimal.Decimal {
	switch txType {
	case models.TransactionTypeIncome:
		return t.Income
	case models.TransactionTypeExpense:
		return t.Expense
	case models.TransactionTypeRepayment:
		return t.Repayment
	}
	return decimal.Zero
}

// CategoryAmount is the sum of one category's rows.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Ratio is a quotient that may be undefined (zero denominator).
type Ratio struct {
	Value   decimal.Decimal `json:"value"`
	Defined bool            `json:"defined"`
}

// Summary is the dashboard headline.
type Summary struct {
	Totals           Totals          `json:"totals"`
	Savings          decimal.Decimal `json:"savings"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	SavingsRatio     Ratio           `json:"savings_ratio"`
	TransactionCount int             `json:"transaction_count"`
}

// TotalsByType sums amounts grouped by type.
func TotalsByType(txns []models.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero, Repayment: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		case models.TransactionTypeRepayment:
			totals.Repayment = totals.Repayment.Add(t.Amount)
		}
	}
	return totals
}

// RemainingBalance is income minus savings, expenses and card repayments.
func RemainingBalance(totals Totals, savings decimal.Decimal) decimal.Decimal {
	return totals.Income.Sub(savings).Sub(totals.Expense).Sub(totals.Repayment)
}

// CategoryBreakdown sums rows of txType per category label, sorted by label.
// Labels no longer present in the category registry are still reported.
func CategoryBreakdown(txns []models.Transaction, txType models.TransactionType) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Type != txType {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// MonthlyBreakdown is TotalsByType restricted to one month label.
func MonthlyBreakdown(txns []models.Transaction, month string) Totals {
	var inMonth []models.Transaction
	for _, t := range txns {
		if t.Month == month {
			inMonth = append(inMonth, t)
		}
	}
	return TotalsByType(inMonth)
}

// Months lists the distinct month labels present in the ledger, newest first.
func Months(txns []models.Transaction) []string {
	firstDay := make(map[string]int64)
	for _, t := range txns {
		y, m, _ := t.Date.Date()
		firstDay[t.Month] = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Unix()
	}

	out := make([]string, 0, len(firstDay))
	for month := range firstDay {
		out = append(out, month)
	}
	sort.Slice(out, func(i, j int) bool { return firstDay[out[i]] > firstDay[out[j]] })
	return out
}

// SavingsRatio is (income - expense) / income, undefined without income.
func SavingsRatio(totals Totals) Ratio {
	if !totals.Income.IsPositive() {
		return Ratio{Value: decimal.Zero}
	}
	return Ratio{
		Value:   totals.Income.Sub(totals.Expense).DivRound(totals.Income, 4),
		Defined: true,
	}
}

// Summarize computes the headline figures for a snapshot.
func Summarize(s Snapshot) Summary {
	totals := TotalsByType(s.Transactions)
	return Summary{
		Totals:           totals,
		Savings:          s.Savings,
		RemainingBalance: RemainingBalance(totals, s.Savings),
		SavingsRatio:     SavingsRatio(totals),
		TransactionCount: len(s.Transactions),
	}
}
