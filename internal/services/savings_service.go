package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// savingsService handles the single savings balance.
type savingsService struct {
	gate *Gate
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(gate *Gate) SavingsServicer {
	return &savingsService{gate: gate}
}

// Contribute adds delta to the balance.
func (s *savingsService) Contribute(delta decimal.Decimal) (*models.Savings, error) {
	if err := models.ValidateAmount(delta); err != nil {
		return nil, err
	}
	return s.mutate("savings contributed", delta, func(current decimal.Decimal) decimal.Decimal {
		return current.Add(delta)
	})
}

// Set overwrites the balance.
func (s *savingsService) Set(value decimal.Decimal) (*models.Savings, error) {
	if err := models.ValidateAmount(value); err != nil {
		return nil, err
	}
	return s.mutate("savings set", value, func(decimal.Decimal) decimal.Decimal {
		return value
	})
}

// Reset sets the balance back to zero.
func (s *savingsService) Reset() (*models.Savings, error) {
	return s.mutate("savings reset", decimal.Zero, func(decimal.Decimal) decimal.Decimal {
		return decimal.Zero
	})
}

// Get returns the current balance.
func (s *savingsService) Get() (*models.Savings, error) {
	var savings models.Savings
	err := s.gate.read(func(tx *gorm.DB) error {
		return readSavings(tx, &savings)
	})
	if err != nil {
		return nil, err
	}
	return &savings, nil
}

func (s *savingsService) mutate(event string, input decimal.Decimal, next func(decimal.Decimal) decimal.Decimal) (*models.Savings, error) {
	var savings models.Savings
	err := s.gate.write(func(tx *gorm.DB) error {
		if err := loadSavings(tx, &savings); err != nil {
			return err
		}
		balance := next(savings.Amount)
		if err := models.ValidateAmount(balance); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "savings balance would exceed the storable range")
		}
		savings.Amount = balance
		return tx.Save(&savings).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow(event, "input", input.String(), "balance", savings.Amount.String())
	return &savings, nil
}

// readSavings reads the singleton row, reporting zero when it is missing.
func readSavings(tx *gorm.DB, dest *models.Savings) error {
	err := tx.First(dest, models.SavingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		*dest = models.Savings{ID: models.SavingsID, Amount: decimal.Zero}
		return nil
	}
	return err
}

// loadSavings reads the singleton row, creating it at zero when missing.
func loadSavings(tx *gorm.DB, dest *models.Savings) error {
	return tx.Where(models.Savings{ID: models.SavingsID}).
		Attrs(models.Savings{Amount: decimal.Zero}).
		FirstOrCreate(dest).Error
}
