package services

import (
	"reflect"
	"testing"

	"finledger/internal/testutil"
)

func TestCategoryService(t *testing.T) {
	t.Run("add_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(NewGate(db))

		first, err := svc.AddCategory("Travel")
		testutil.AssertNoError(t, err)
		second, err := svc.AddCategory("Travel")
		testutil.AssertNoError(t, err)
		if first.ID != second.ID {
			t.Errorf("expected the existing row back, got ids %d and %d", first.ID, second.ID)
		}

		labels, err := svc.ListCategories()
		testutil.AssertNoError(t, err)
		if len(labels) != 1 {
			t.Errorf("expected 1 label, got %v", labels)
		}
	})

	t.Run("list_sorted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(NewGate(db))
		for _, label := range []string{"Rent", "Food", "Medical"} {
			testutil.CreateTestCategory(t, db, label)
		}

		labels, err := svc.ListCategories()
		testutil.AssertNoError(t, err)
		if want := []string{"Food", "Medical", "Rent"}; !reflect.DeepEqual(labels, want) {
			t.Errorf("expected %v, got %v", want, labels)
		}
	})

	t.Run("remove_absent_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(NewGate(db))

		testutil.AssertNoError(t, svc.RemoveCategory("Ghost"))
	})

	t.Run("remove_orphans_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		gate := NewGate(db)
		svc := NewCategoryService(gate)
		testutil.CreateTestCategory(t, db, "Food")
		testutil.CreateTestExpense(t, db, "12", "Food", "")

		testutil.AssertNoError(t, svc.RemoveCategory("Food"))

		breakdown, err := NewReportService(gate).CategoryBreakdown("Expense")
		testutil.AssertNoError(t, err)
		if len(breakdown) != 1 || breakdown[0].Category != "Food" {
			t.Fatalf("expected Food to remain in the breakdown, got %+v", breakdown)
		}
		testutil.AssertDecimal(t, breakdown[0].Amount, "12")
	})

	t.Run("empty_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(NewGate(db))

		_, err := svc.AddCategory(" ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
