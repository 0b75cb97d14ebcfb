package types

import "time"

// CacheEntry is one fingerprint-keyed payload in the database-backed cache.
// Writes are whole-value replacements; there is no TTL or eviction.
type CacheEntry struct {
	Key       string    `gorm:"column:key;primaryKey" json:"key"`
	Purpose   string    `gorm:"column:purpose;not null;index" json:"purpose"`
	Query     string    `gorm:"column:query;not null" json:"query"`
	Payload   string    `gorm:"column:payload;type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CacheEntry) TableName() string { return "cache_entry" }
