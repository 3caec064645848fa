package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RackPrice is the wholesale price of one fuel type at one location on one day.
// (date, location_id, fuel_type_id) is the upsert key for feed ingestion.
type RackPrice struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	Date       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_rack_prices_date_location_fuel,priority:1;index" json:"date"`
	LocationID int64           `gorm:"not null;uniqueIndex:idx_rack_prices_date_location_fuel,priority:2" json:"location_id"`
	Location   *Location       `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	FuelTypeID int64           `gorm:"not null;uniqueIndex:idx_rack_prices_date_location_fuel,priority:3" json:"fuel_type_id"`
	FuelType   *FuelType       `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
	BasePrice  decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"base_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
