package models

import "time"

// AbandonedCart holds the latest known contact for a visitor who started but
// did not finish checkout. At most one row per email.
type AbandonedCart struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Email         string    `gorm:"column:email;not null;uniqueIndex"`
	Name          string    `gorm:"column:name"`
	CPF           string    `gorm:"column:cpf"`
	Phone         string    `gorm:"column:phone"`
	TicketPlate   string    `gorm:"column:ticket_plate"`
	TicketArticle string    `gorm:"column:ticket_article"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
