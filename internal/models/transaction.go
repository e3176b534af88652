package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome    TransactionType = "Income"
	TransactionTypeExpense   TransactionType = "Expense"
	TransactionTypeRepayment TransactionType = "Repayment"
)

// TransactionTypes lists the closed set of ledger entry types.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeRepayment,
}

// Sentinel categories for the non-expense types.
const (
	CategoryIncome    = "Income"
	CategoryRepayment = "Repayment"
)

// MaxDescriptionLength bounds the free-form description.
const MaxDescriptionLength = 500

// ParseTransactionType matches s case-insensitively against the known types.
func ParseTransactionType(s string) (TransactionType, bool) {
	for _, t := range TransactionTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Transaction is one ledger entry.
type Transaction struct {
	Base
	Type        TransactionType `gorm:"type:varchar(16);not null;index" json:"type"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Month       string          `gorm:"type:varchar(32);not null;index" json:"month"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(128);not null;default:''" json:"category"`
	Description string          `gorm:"type:varchar(500);not null;default:''" json:"description"`
	Card        string          `gorm:"type:varchar(128);not null;default:'';index" json:"card"`
}

// BeforeSave keeps the stored month label derived from the date.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Month = MonthLabel(t.Date)
	return nil
}

// TransactionInput carries the caller-supplied fields of a new entry.
type TransactionInput struct {
	Type        TransactionType
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Card        string
}

// NewTransaction validates input against the per-type rules and builds the
// record to insert. A zero date means today.
//
// Income carries no card and the "Income" category; Expense needs a
// category and may name a card; Repayment must name a card and carries the
// "Repayment" category.
func NewTransaction(in TransactionInput) (*Transaction, error) {
	if err := ValidateAmount(in.Amount); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if len(description) > MaxDescriptionLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 500 characters")
	}

	date := in.Date
	if date.IsZero() {
		date = Today()
	}

	t := &Transaction{
		Type:        in.Type,
		Date:        DateOnly(date),
		Amount:      in.Amount,
		Description: description,
		Card:        strings.TrimSpace(in.Card),
	}

	switch in.Type {
	case TransactionTypeIncome:
		if t.Card != "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income cannot be charged to a card")
		}
		t.Category = CategoryIncome
	case TransactionTypeExpense:
		t.Category = strings.TrimSpace(in.Category)
		if t.Category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense category is required")
		}
	case TransactionTypeRepayment:
		if t.Card == "" {
			return nil, apperrors.ErrRepaymentCardRequired
		}
		t.Category = CategoryRepayment
		if t.Description == "" {
			t.Description = "Repayment for " + t.Card
		}
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}

	t.Month = MonthLabel(t.Date)
	return t, nil
}
