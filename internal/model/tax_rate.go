package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate holds the per-litre tax components for one fuel type in one province.
type TaxRate struct {
	ID                int64           `gorm:"primaryKey" json:"id"`
	ProvinceID        int64           `gorm:"not null;uniqueIndex:idx_tax_rates_province_fuel" json:"province_id"`
	Province          *Province       `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	FuelTypeID        int64           `gorm:"not null;uniqueIndex:idx_tax_rates_province_fuel" json:"fuel_type_id"`
	FuelType          *FuelType       `gorm:"foreignKey:FuelTypeID" json:"fuel_type,omitempty"`
	CarbonTax         decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"carbon_tax"`
	ProvincialRoadTax decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"provincial_road_tax"`
	FederalExciseTax  decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"federal_excise_tax"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
