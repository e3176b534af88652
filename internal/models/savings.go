package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsID is the primary key of the single savings row.
const SavingsID uint = 1

// Savings is the household savings balance. It has no history.
type Savings struct {
	ID        uint            `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName pins the singleton table name.
func (Savings) TableName() string { return "savings" }
