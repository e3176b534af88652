package models

import (
	"strings"
	"time"
)

// Base contains common columns for all ledger tables. IDs are assigned by
// the database and increase monotonically.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every model managed by AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Transaction{},
		&Savings{},
		&CreditCard{},
		&Category{},
		&Goal{},
		&Setting{},
	}
}

// NormalizeName folds a card or goal name for case-insensitive uniqueness.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
