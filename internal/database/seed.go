package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finledger/internal/logger"
	"finledger/internal/models"
)

// Seed makes sure the savings row exists and, on the very first run only,
// registers the default cards and categories. Later runs leave the registries
// alone so that removed defaults stay removed.
func Seed(db *gorm.DB, cards, categories []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		savings := models.Savings{ID: models.SavingsID, Amount: decimal.Zero}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&savings).Error; err != nil {
			return fmt.Errorf("failed to ensure savings row: %w", err)
		}

		var marker models.Setting
		err := tx.Where("key = ?", models.SettingDefaultsSeeded).First(&marker).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read seed marker: %w", err)
		}

		for _, name := range cards {
			card := models.CreditCard{Card: strings.TrimSpace(name), MaxLimit: decimal.Zero}
			if card.Card == "" {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&card).Error; err != nil {
				return fmt.Errorf("failed to seed card %q: %w", name, err)
			}
		}
		for _, label := range categories {
			category := models.Category{Label: strings.TrimSpace(label)}
			if category.Label == "" {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", label, err)
			}
		}

		marker = models.Setting{Key: models.SettingDefaultsSeeded, Value: "true"}
		if err := tx.Create(&marker).Error; err != nil {
			return fmt.Errorf("failed to write seed marker: %w", err)
		}

		logger.Named("database").Infow("Seeded default registries",
			"cards", len(cards),
			"categories", len(categories),
		)
		return nil
	})
}
