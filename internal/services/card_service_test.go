package services

import (
	"testing"

	"finledger/internal/testutil"
)

func TestCardService(t *testing.T) {
	t.Run("add_and_list_sorted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(NewGate(db))

		for _, name := range []string{"Rogers", "  CIBC ", "amex"} {
			_, err := svc.AddCard(name)
			testutil.AssertNoError(t, err)
		}

		cards, err := svc.ListCards()
		testutil.AssertNoError(t, err)
		want := []string{"amex", "CIBC", "Rogers"}
		if len(cards) != len(want) {
			t.Fatalf("expected %d cards, got %d", len(want), len(cards))
		}
		for i, name := range want {
			if cards[i].Card != name {
				t.Errorf("position %d: expected %q, got %q", i, name, cards[i].Card)
			}
			testutil.AssertDecimal(t, cards[i].MaxLimit, "0")
		}
	})

	t.Run("duplicate_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(NewGate(db))

		_, err := svc.AddCard("RBC")
		testutil.AssertNoError(t, err)
		_, err = svc.AddCard("rbc")
		testutil.AssertAppError(t, err, "DUPLICATE_CARD")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(NewGate(db))

		_, err := svc.AddCard("   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("set_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(NewGate(db))
		testutil.CreateTestCard(t, db, "RBC", "0")

		card, err := svc.SetLimit("rbc", testutil.Dec("500"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, card.MaxLimit, "500")

		got, err := svc.GetCard("RBC")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, got.MaxLimit, "500")

		_, err = svc.SetLimit("RBC", testutil.Dec("-1"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.SetLimit("RBC", testutil.Dec("500.00001"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.SetLimit("RBC", testutil.Dec("10000000000000000"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.SetLimit("Nope", testutil.Dec("1"))
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})

	t.Run("remove_leaves_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(NewGate(db))
		testutil.CreateTestCard(t, db, "RBC", "500")
		testutil.CreateTestExpense(t, db, "20", "Food", "RBC")

		testutil.AssertNoError(t, svc.RemoveCard("RBC"))

		_, err := svc.GetCard("RBC")
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
		err = svc.RemoveCard("RBC")
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")

		txns, err := NewTransactionService(NewGate(db)).ListTransactions(TransactionFilter{Card: "RBC"})
		testutil.AssertNoError(t, err)
		if len(txns) != 1 {
			t.Errorf("expected the RBC expense to survive, got %d rows", len(txns))
		}
	})
}
