package model

import "time"

// Province groups locations for tax purposes.
type Province struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Location is a rack pricing point. Feed rows reference it by exact name.
type Location struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	ProvinceID int64     `gorm:"not null;index" json:"province_id"`
	Province   *Province `gorm:"foreignKey:ProvinceID" json:"province,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FuelType is a product grade such as "REG 87".
type FuelType struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
