package models

import "time"

// Entry is one key-value pair of the local store
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Value     []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name so the schema doesn't follow the struct name
func (Entry) TableName() string {
	return "kv_entries"
}
