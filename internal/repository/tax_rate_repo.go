package repository

import (
	"context"

	"fuelprice/internal/model"

	"gorm.io/gorm"
)

type TaxRateRepository interface {
	Create(ctx context.Context, rate *model.TaxRate) error
	Update(ctx context.Context, rate *model.TaxRate) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.TaxRate, error)
	FindByProvinceAndFuelType(ctx context.Context, provinceID, fuelTypeID int64) (*model.TaxRate, error)
	List(ctx context.Context) ([]model.TaxRate, error)
}

type taxRateRepository struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Create(ctx context.Context, rate *model.TaxRate) error {
	return GetDB(ctx, r.db).Omit("Province", "FuelType").Create(rate).Error
}

func (r *taxRateRepository) Update(ctx context.Context, rate *model.TaxRate) error {
	return GetDB(ctx, r.db).Omit("Province", "FuelType").Save(rate).Error
}

func (r *taxRateRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxRate{}).Error
}

func (r *taxRateRepository) FindByID(ctx context.Context, id int64) (*model.TaxRate, error) {
	var rate model.TaxRate
	if err := GetDB(ctx, r.db).Preload("Province").Preload("FuelType").First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *taxRateRepository) FindByProvinceAndFuelType(ctx context.Context, provinceID, fuelTypeID int64) (*model.TaxRate, error) {
	var rate model.TaxRate
	if err := GetDB(ctx, r.db).
		Where("province_id = ? AND fuel_type_id = ?", provinceID, fuelTypeID).
		First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

// List returns every tax rate with its province and fuel type loaded.
func (r *taxRateRepository) List(ctx context.Context) ([]model.TaxRate, error) {
	var rates []model.TaxRate
	if err := GetDB(ctx, r.db).
		Preload("Province").
		Preload("FuelType").
		Order("province_id, fuel_type_id").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
