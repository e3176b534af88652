package testutil_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"transactions", "savings", "card_limits", "categories", "goals", "settings"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}

	var savings models.Savings
	if err := db.First(&savings, models.SavingsID).Error; err != nil {
		t.Fatalf("savings row should exist: %v", err)
	}
	testutil.AssertDecimal(t, savings.Amount, "0")
}

func TestSetupTestDB_SilencesLogger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if logger.Get().Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected the test logger to discard all output")
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestIncome(t, first, "100")

	var count int64
	second.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("expected an empty second database, got %d rows", count)
	}
}

func TestSetupSeededTestDB(t *testing.T) {
	db := testutil.SetupSeededTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var cards, categories int64
	db.Model(&models.CreditCard{}).Count(&cards)
	db.Model(&models.Category{}).Count(&categories)
	if cards != 4 {
		t.Errorf("expected 4 default cards, got %d", cards)
	}
	if categories != 12 {
		t.Errorf("expected 12 default categories, got %d", categories)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	income := testutil.CreateTestIncome(t, db, "1000")
	if income.ID == 0 {
		t.Fatal("transaction should have a non-zero ID")
	}
	if income.Month != "March 2025" {
		t.Errorf("expected month March 2025, got %q", income.Month)
	}

	card := testutil.CreateTestCard(t, db, "", "500")
	testutil.AssertDecimal(t, card.MaxLimit, "500")
	if card.CardKey == "" {
		t.Error("card key should be derived on save")
	}

	goal := testutil.CreateTestGoal(t, db, "2000")
	testutil.AssertDecimal(t, goal.AccumulatedAmount, "0")

	testutil.SetTestSavings(t, db, "250")
	var savings models.Savings
	db.First(&savings, models.SavingsID)
	testutil.AssertDecimal(t, savings.Amount, "250")
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrCardNotFound, "CARD_NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
}
