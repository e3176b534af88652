package models

// Category is an expense category label. Transactions reference categories
// by value, so removing one leaves history untouched.
type Category struct {
	Base
	Label string `gorm:"type:varchar(128);uniqueIndex;not null" json:"label"`
}
