package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCard is a registered card and its credit limit. A zero limit means
// no limit has been set.
type CreditCard struct {
	Base
	Card     string          `gorm:"column:card;type:varchar(128);not null" json:"card"`
	CardKey  string          `gorm:"column:card_key;type:varchar(128);uniqueIndex;not null" json:"-"`
	MaxLimit decimal.Decimal `gorm:"column:max_limit;type:decimal(20,4);not null;default:0" json:"max_limit"`
}

// TableName keeps the historical table name.
func (CreditCard) TableName() string { return "card_limits" }

// BeforeSave maintains the case-insensitive lookup key.
func (c *CreditCard) BeforeSave(tx *gorm.DB) error {
	c.CardKey = NormalizeName(c.Card)
	return nil
}
