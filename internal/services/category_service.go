package services

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// categoryService handles the expense category registry.
type categoryService struct {
	gate *Gate
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(gate *Gate) CategoryServicer {
	return &categoryService{gate: gate}
}

// AddCategory registers a label. Adding an existing label is a no-op that
// returns the stored row.
func (s *categoryService) AddCategory(label string) (*models.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category label is required")
	}
	if len(label) > maxNameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category label must be at most 128 characters")
	}

	var category models.Category
	var created bool
	err := s.gate.write(func(tx *gorm.DB) error {
		category = models.Category{Label: label}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&category)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return tx.Where("label = ?", label).First(&category).Error
	})
	if err != nil {
		return nil, err
	}

	if created {
		logger.Get().Infow("category added", "label", label)
	}
	return &category, nil
}

// RemoveCategory unregisters a label. Removing an unknown label is a no-op
// and transactions tagged with it are untouched.
func (s *categoryService) RemoveCategory(label string) error {
	label = strings.TrimSpace(label)
	var affected int64
	err := s.gate.write(func(tx *gorm.DB) error {
		result := tx.Where("label = ?", label).Delete(&models.Category{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}

	if affected > 0 {
		logger.Get().Infow("category removed", "label", label)
	}
	return nil
}

// ListCategories returns every label in lexicographic order.
func (s *categoryService) ListCategories() ([]string, error) {
	labels := []string{}
	err := s.gate.read(func(tx *gorm.DB) error {
		return tx.Model(&models.Category{}).Order("label ASC").Pluck("label", &labels).Error
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}
