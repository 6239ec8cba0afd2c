package models

import (
	"encoding/json"
	"time"

	"github.com/autorecurso/autorecurso-backend/pkg/enums"
)

// IntakeSession is the server-side state of one appeal flow. TicketInfo and
// PersonalInfo are stored as JSON payloads; the transient fields (ticket,
// strategy, reason, personal info, billing id) are cleared once the final
// document is produced.
type IntakeSession struct {
	ID                 string          `gorm:"column:id;primaryKey"`
	Step               enums.AppStep   `gorm:"column:step;not null"`
	TicketInfo         json.RawMessage `gorm:"column:ticket_info"`
	SelectedStrategyID string          `gorm:"column:selected_strategy_id"`
	UserReason         string          `gorm:"column:user_reason"`
	PersonalInfo       json.RawMessage `gorm:"column:personal_info"`
	BillingID          string          `gorm:"column:billing_id"`
	FinalDocument      string          `gorm:"column:final_document"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
