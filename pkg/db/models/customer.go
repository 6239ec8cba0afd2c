package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the per-email registry row, keyed by email for upserts.
type Customer struct {
	ID             string          `gorm:"column:id;primaryKey"`
	Email          string          `gorm:"column:email;not null;uniqueIndex"`
	Name           string          `gorm:"column:name"`
	CPF            string          `gorm:"column:cpf"`
	Phone          string          `gorm:"column:phone"`
	TotalResources int             `gorm:"column:total_resources;not null;default:0"`
	TotalPaid      decimal.Decimal `gorm:"column:total_paid;type:numeric;not null;default:0"`
	RegisteredAt   time.Time       `gorm:"column:registered_at;autoCreateTime"`
	LastActivity   time.Time       `gorm:"column:last_activity;index"`
}
