package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EmailStatusSent  = "sent"
	EmailStatusError = "error"
)

// EmailLog records one delivery attempt of the daily price email.
type EmailLog struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	OperatorID   int64          `gorm:"not null;index" json:"operator_id"`
	Operator     *Operator      `gorm:"foreignKey:OperatorID;constraint:OnDelete:CASCADE" json:"operator,omitempty"`
	SentAt       time.Time      `gorm:"autoCreateTime;index" json:"sent_at"`
	Status       string         `gorm:"type:varchar(10);not null;index" json:"status"` // sent, error
	ErrorMessage *string        `gorm:"type:text" json:"error_message"`
	PriceData    datatypes.JSON `gorm:"type:jsonb" json:"price_data"`
}
