package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operator is a station operator who receives the daily price email.
// Operators without a location are skipped by the daily job.
type Operator struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	FirstName  string          `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string          `gorm:"type:varchar(100);not null" json:"last_name"`
	Email      string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	LocationID *int64          `gorm:"index" json:"location_id"`
	Location   *Location       `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	Discount   decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"discount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (o Operator) FullName() string {
	return o.FirstName + " " + o.LastName
}
