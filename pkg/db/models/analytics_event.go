package models

import (
	"encoding/json"
	"time"

	"github.com/autorecurso/autorecurso-backend/pkg/enums"
)

// AnalyticsEvent is one append-only row in the local event log. Data carries
// the denormalized event bag (customer identity, ticket metadata, amounts).
type AnalyticsEvent struct {
	ID        string                   `gorm:"column:id;primaryKey"`
	Type      enums.AnalyticsEventType `gorm:"column:type;not null;index"`
	Data      json.RawMessage          `gorm:"column:data"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime;index"`
}
