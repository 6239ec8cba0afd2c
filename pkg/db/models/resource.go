package models

import "time"

// Resource is one generated appeal document, kept verbatim so the admin can
// re-send it by email later.
type Resource struct {
	ID              string    `gorm:"column:id;primaryKey"`
	CustomerID      string    `gorm:"column:customer_id;not null;index"`
	CustomerEmail   string    `gorm:"column:customer_email;not null;index"`
	CustomerName    string    `gorm:"column:customer_name"`
	TicketPlate     string    `gorm:"column:ticket_plate"`
	TicketArticle   string    `gorm:"column:ticket_article"`
	ViolationType   string    `gorm:"column:violation_type"`
	StrategyTitle   string    `gorm:"column:strategy_title"`
	DocumentContent string    `gorm:"column:document_content"`
	GeneratedAt     time.Time `gorm:"column:generated_at;autoCreateTime;index"`
}
