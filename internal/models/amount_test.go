package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"zero", "0", nil},
		{"four_places", "12.3456", nil},
		{"trailing_zeros_past_scale", "1.50000", nil},
		{"largest_storable", "9999999999999999.9999", nil},
		{"negative", "-0.01", apperrors.ErrNegativeAmount},
		{"five_places", "12.34567", apperrors.ErrInvalidInput},
		{"large_value_with_extra_places", "12345678901234.56789", apperrors.ErrInvalidInput},
		{"at_magnitude_bound", "10000000000000000", apperrors.ErrInvalidInput},
		{"above_magnitude_bound", "123456789012345678", apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewTransaction_AmountBounds(t *testing.T) {
	t.Run("rejects_extra_precision", func(t *testing.T) {
		_, err := NewTransaction(TransactionInput{
			Type:   TransactionTypeIncome,
			Amount: decimal.RequireFromString("12345678901234.56789"),
		})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("rejects_oversized", func(t *testing.T) {
		_, err := NewTransaction(TransactionInput{
			Type:   TransactionTypeIncome,
			Amount: decimal.New(1, 16),
		})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("keeps_four_places", func(t *testing.T) {
		txn, err := NewTransaction(TransactionInput{
			Type:   TransactionTypeIncome,
			Amount: decimal.RequireFromString("12345678901.5678"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txn.Amount.String() != "12345678901.5678" {
			t.Errorf("expected amount unchanged, got %s", txn.Amount)
		}
	})
}
