package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// maxNameLength bounds card and goal names.
const maxNameLength = 128

// cardService handles the credit card registry.
type cardService struct {
	gate *Gate
}

// NewCardService creates a new CardServicer.
func NewCardService(gate *Gate) CardServicer {
	return &cardService{gate: gate}
}

// AddCard registers a card with no limit set.
func (s *cardService) AddCard(name string) (*models.CreditCard, error) {
	name, err := cleanName(name, "card name")
	if err != nil {
		return nil, err
	}

	card := &models.CreditCard{Card: name, MaxLimit: decimal.Zero}
	err = s.gate.write(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CreditCard{}).
			Where("card_key = ?", models.NormalizeName(name)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrDuplicateCard
		}
		return tx.Create(card).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("card added", "card", card.Card)
	return card, nil
}

// RemoveCard unregisters a card. Transactions that name it are untouched.
func (s *cardService) RemoveCard(name string) error {
	err := s.gate.write(func(tx *gorm.DB) error {
		var card models.CreditCard
		if err := findCard(tx, name, &card); err != nil {
			return err
		}
		return tx.Delete(&card).Error
	})
	if err != nil {
		return err
	}

	logger.Get().Infow("card removed", "card", name)
	return nil
}

// SetLimit changes a card's credit limit. Zero clears it.
func (s *cardService) SetLimit(name string, limit decimal.Decimal) (*models.CreditCard, error) {
	if err := models.ValidateAmount(limit); err != nil {
		return nil, err
	}

	var card models.CreditCard
	err := s.gate.write(func(tx *gorm.DB) error {
		if err := findCard(tx, name, &card); err != nil {
			return err
		}
		card.MaxLimit = limit
		return tx.Save(&card).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("card limit set", "card", card.Card, "limit", limit.String())
	return &card, nil
}

// ListCards returns every registered card ordered by name.
func (s *cardService) ListCards() ([]models.CreditCard, error) {
	var cards []models.CreditCard
	err := s.gate.read(func(tx *gorm.DB) error {
		return tx.Order("card_key ASC").Find(&cards).Error
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard looks a card up by name, ignoring case.
func (s *cardService) GetCard(name string) (*models.CreditCard, error) {
	var card models.CreditCard
	err := s.gate.read(func(tx *gorm.DB) error {
		return findCard(tx, name, &card)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func findCard(tx *gorm.DB, name string, dest *models.CreditCard) error {
	key := models.NormalizeName(name)
	if key == "" {
		return apperrors.ErrCardNotFound
	}
	if err := tx.Where("card_key = ?", key).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCardNotFound
		}
		return err
	}
	return nil
}

// cleanName trims a registry name and rejects blank or oversized values.
func cleanName(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
	}
	if len(name) > maxNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be at most 128 characters")
	}
	return name, nil
}
