// models/notification_log.go
package models

import (
	"time"
)

// NotificationLog records one sale receipt delivery attempt.
type NotificationLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SaleID       uint      `gorm:"index;not null" json:"saleId"`
	CustomerID   uint      `gorm:"index;not null" json:"customerId"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt       time.Time `json:"sentAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
