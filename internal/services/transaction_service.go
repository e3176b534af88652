package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

// transactionService handles the transaction ledger.
type transactionService struct {
	gate *Gate
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(gate *Gate) TransactionServicer {
	return &transactionService{gate: gate}
}

// AddTransaction validates and appends a new ledger entry. A card must be
// registered and is stored with its registered spelling. No duplicate
// detection is performed.
func (s *transactionService) AddTransaction(in models.TransactionInput) (*models.Transaction, error) {
	txn, err := models.NewTransaction(in)
	if err != nil {
		return nil, err
	}

	err = s.gate.write(func(tx *gorm.DB) error {
		if txn.Card == "" {
			return tx.Create(txn).Error
		}
		var card models.CreditCard
		if err := findCard(tx, txn.Card, &card); err != nil {
			return err
		}
		if txn.Type == models.TransactionTypeRepayment && strings.TrimSpace(in.Description) == "" {
			txn.Description = "Repayment for " + card.Card
		}
		txn.Card = card.Card
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("transaction added",
		"id", txn.ID,
		"type", txn.Type,
		"amount", txn.Amount.String(),
		"month", txn.Month,
	)
	return txn, nil
}

// AddCombinedIncome records several earners' income as one Income entry whose
// description names every earner, e.g. "Alex + Sam Combined".
func (s *transactionService) AddCombinedIncome(date time.Time, contributions []IncomeContribution) (*models.Transaction, error) {
	if len(contributions) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one contribution is required")
	}

	total := decimal.Zero
	earners := make([]string, 0, len(contributions))
	for _, c := range contributions {
		name := strings.TrimSpace(c.Earner)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "earner name is required")
		}
		if err := models.ValidateAmount(c.Amount); err != nil {
			return nil, err
		}
		total = total.Add(c.Amount)
		earners = append(earners, name)
	}

	return s.AddTransaction(models.TransactionInput{
		Type:        models.TransactionTypeIncome,
		Date:        date,
		Amount:      total,
		Description: strings.Join(earners, " + ") + " Combined",
	})
}

// UpdateTransaction changes the amount and/or description of an entry.
func (s *transactionService) UpdateTransaction(id uint, update TransactionUpdate) (*models.Transaction, error) {
	updates := map[string]interface{}{}
	if update.Amount != nil {
		if err := models.ValidateAmount(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if len(description) > models.MaxDescriptionLength {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 500 characters")
		}
		updates["description"] = description
	}

	var txn models.Transaction
	err := s.gate.write(func(tx *gorm.DB) error {
		if err := findTransaction(tx, id, &txn); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&txn).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&txn, id).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("transaction updated", "id", id, "fields", len(updates))
	return &txn, nil
}

// DeleteTransaction removes an entry. Deleting an unknown id is a no-op.
func (s *transactionService) DeleteTransaction(id uint) error {
	var affected int64
	err := s.gate.write(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Transaction{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}

	if affected > 0 {
		logger.Get().Infow("transaction deleted", "id", id)
	}
	return nil
}

// ListTransactions returns every matching entry, newest first.
func (s *transactionService) ListTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.gate.read(func(tx *gorm.DB) error {
		return listTransactions(tx, filter, &transactions)
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransactions retrieves a paginated, filtered page of entries.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var (
		totalItems   int64
		transactions []models.Transaction
	)
	err := s.gate.read(func(tx *gorm.DB) error {
		base := applyTransactionFilters(tx.Model(&models.Transaction{}), filter)
		if err := base.Count(&totalItems).Error; err != nil {
			return err
		}
		return applyTransactionFilters(tx.Model(&models.Transaction{}), filter).
			Scopes(pagination.Paginate(page)).
			Order("date DESC").Order("id DESC").
			Find(&transactions).Error
	})
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a single entry.
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.gate.read(func(tx *gorm.DB) error {
		return findTransaction(tx, id, &txn)
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ResetTransactions deletes every entry.
func (s *transactionService) ResetTransactions() error {
	var affected int64
	err := s.gate.write(func(tx *gorm.DB) error {
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Transaction{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}

	logger.Get().Infow("transactions reset", "deleted", affected)
	return nil
}

func findTransaction(tx *gorm.DB, id uint, dest *models.Transaction) error {
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func listTransactions(tx *gorm.DB, filter TransactionFilter, dest *[]models.Transaction) error {
	return applyTransactionFilters(tx.Model(&models.Transaction{}), filter).
		Order("date DESC").Order("id DESC").
		Find(dest).Error
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Month != "" {
		q = q.Where("month = ?", f.Month)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Card != "" {
		q = q.Where("LOWER(card) = ?", models.NormalizeName(f.Card))
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", models.DateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", models.DateOnly(*f.ToDate))
	}
	return q
}
