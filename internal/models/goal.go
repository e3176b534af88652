package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a named savings target, independent of the main savings balance.
type Goal struct {
	Base
	Name              string          `gorm:"type:varchar(128);not null" json:"name"`
	NameKey           string          `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	TargetAmount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"target_amount"`
	AccumulatedAmount decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"accumulated_amount"`
}

// BeforeSave maintains the case-insensitive lookup key.
func (g *Goal) BeforeSave(tx *gorm.DB) error {
	g.NameKey = NormalizeName(g.Name)
	return nil
}

// Progress is accumulated/target clamped to 1. The stored amount itself may
// overshoot the target.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	ratio := g.AccumulatedAmount.Div(g.TargetAmount)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}
