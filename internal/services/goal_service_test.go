package services

import (
	"testing"

	"finledger/internal/testutil"
)

func TestGoalService(t *testing.T) {
	t.Run("overshoot_clamps_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))

		_, err := svc.CreateGoal("X", testutil.Dec("100"))
		testutil.AssertNoError(t, err)
		goal, err := svc.Contribute("X", testutil.Dec("150"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, goal.AccumulatedAmount, "150")

		ratio, err := svc.ProgressRatio("x")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, ratio, "1")
	})

	t.Run("partial_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))
		goal := testutil.CreateTestGoal(t, db, "400")

		_, err := svc.Contribute(goal.Name, testutil.Dec("100"))
		testutil.AssertNoError(t, err)
		ratio, err := svc.ProgressRatio(goal.Name)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, ratio, "0.25")
	})

	t.Run("duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))

		_, err := svc.CreateGoal("Vacation", testutil.Dec("100"))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateGoal("vacation", testutil.Dec("200"))
		testutil.AssertAppError(t, err, "DUPLICATE_GOAL")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))

		_, err := svc.CreateGoal("Car", testutil.Dec("0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateGoal("", testutil.Dec("10"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateGoal("Boat", testutil.Dec("99.99999"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateGoal("Island", testutil.Dec("10000000000000000"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		goal := testutil.CreateTestGoal(t, db, "10")
		_, err = svc.Contribute(goal.Name, testutil.Dec("-5"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.Contribute(goal.Name, testutil.Dec("0.00001"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Contribute(goal.Name, testutil.Dec("9999999999999999"))
		testutil.AssertNoError(t, err)
		_, err = svc.Contribute(goal.Name, testutil.Dec("1"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))

		_, err := svc.Contribute("missing", testutil.Dec("1"))
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
		_, err = svc.ProgressRatio("missing")
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(NewGate(db))

		goals, err := svc.ListGoals()
		testutil.AssertNoError(t, err)
		if len(goals) != 0 {
			t.Fatalf("expected no goals, got %d", len(goals))
		}

		testutil.CreateTestGoal(t, db, "10")
		testutil.CreateTestGoal(t, db, "20")
		goals, err = svc.ListGoals()
		testutil.AssertNoError(t, err)
		if len(goals) != 2 {
			t.Errorf("expected 2 goals, got %d", len(goals))
		}
	})
}
