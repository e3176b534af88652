package models

// Setting is a key/value row for process-independent flags.
type Setting struct {
	Key   string `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// SettingDefaultsSeeded marks that default cards and categories were inserted.
const SettingDefaultsSeeded = "defaults_seeded"
