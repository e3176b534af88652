package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestTransaction inserts a validated transaction dated 2025-03-15.
// Expenses get the "Food" category unless in.Category is set.
func CreateTestTransaction(t *testing.T, db *gorm.DB, in models.TransactionInput) *models.Transaction {
	t.Helper()

	if in.Date.IsZero() {
		in.Date = Date(2025, time.March, 15)
	}
	if in.Type == models.TransactionTypeExpense && in.Category == "" {
		in.Category = "Food"
	}

	txn, err := models.NewTransaction(in)
	if err != nil {
		t.Fatalf("invalid test transaction: %v", err)
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestIncome inserts an income row of the given amount.
func CreateTestIncome(t *testing.T, db *gorm.DB, amount string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionInput{
		Type:   models.TransactionTypeIncome,
		Amount: Dec(amount),
	})
}

// CreateTestExpense inserts an expense row, optionally charged to card.
func CreateTestExpense(t *testing.T, db *gorm.DB, amount, category, card string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionInput{
		Type:     models.TransactionTypeExpense,
		Amount:   Dec(amount),
		Category: category,
		Card:     card,
	})
}

// CreateTestCard registers a card with the given limit.
func CreateTestCard(t *testing.T, db *gorm.DB, name, limit string) *models.CreditCard {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("Card %d", nextID())
	}
	card := &models.CreditCard{Card: name, MaxLimit: Dec(limit)}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestCategory registers a category label.
func CreateTestCategory(t *testing.T, db *gorm.DB, label string) *models.Category {
	t.Helper()

	if label == "" {
		label = fmt.Sprintf("Category %d", nextID())
	}
	category := &models.Category{Label: label}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGoal creates a goal with a unique name.
func CreateTestGoal(t *testing.T, db *gorm.DB, target string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:              fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:      Dec(target),
		AccumulatedAmount: decimal.Zero,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// SetTestSavings overwrites the savings balance.
func SetTestSavings(t *testing.T, db *gorm.DB, amount string) {
	t.Helper()

	err := db.Model(&models.Savings{}).Where("id = ?", models.SavingsID).
		Update("amount", Dec(amount)).Error
	if err != nil {
		t.Fatalf("failed to set test savings: %v", err)
	}
}
