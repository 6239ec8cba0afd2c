package models

import "time"

// AdminSettings is a singleton row (id 1). It survives bulk data clears.
type AdminSettings struct {
	ID                      uint      `gorm:"column:id;primaryKey"`
	IsFreeGenerationEnabled bool      `gorm:"column:is_free_generation_enabled;not null;default:false"`
	FreeGenerationLimit     int       `gorm:"column:free_generation_limit;not null;default:10"`
	FreeGenerationsUsed     int       `gorm:"column:free_generations_used;not null;default:0"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
