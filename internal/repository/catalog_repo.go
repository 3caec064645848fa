package repository

import (
	"context"

	"fuelprice/internal/model"

	"gorm.io/gorm"
)

type ProvinceRepository interface {
	Create(ctx context.Context, province *model.Province) error
	FindByID(ctx context.Context, id int64) (*model.Province, error)
	List(ctx context.Context) ([]model.Province, error)
}

type provinceRepository struct {
	db *gorm.DB
}

func NewProvinceRepository(db *gorm.DB) ProvinceRepository {
	return &provinceRepository{db: db}
}

func (r *provinceRepository) Create(ctx context.Context, province *model.Province) error {
	return GetDB(ctx, r.db).Create(province).Error
}

func (r *provinceRepository) FindByID(ctx context.Context, id int64) (*model.Province, error) {
	var province model.Province
	if err := GetDB(ctx, r.db).First(&province, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &province, nil
}

func (r *provinceRepository) List(ctx context.Context) ([]model.Province, error) {
	var provinces []model.Province
	if err := GetDB(ctx, r.db).Order("name").Find(&provinces).Error; err != nil {
		return nil, err
	}
	return provinces, nil
}

type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	Update(ctx context.Context, location *model.Location) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	CountRackPrices(ctx context.Context, id int64) (int64, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	return GetDB(ctx, r.db).Create(location).Error
}

func (r *locationRepository) Update(ctx context.Context, location *model.Location) error {
	return GetDB(ctx, r.db).Omit("Province").Save(location).Error
}

func (r *locationRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Location{}).Error
}

func (r *locationRepository) FindByID(ctx context.Context, id int64) (*model.Location, error) {
	var location model.Location
	if err := GetDB(ctx, r.db).Preload("Province").First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := GetDB(ctx, r.db).Preload("Province").Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) CountRackPrices(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.RackPrice{}).Where("location_id = ?", id).Count(&count).Error
	return count, err
}

type FuelTypeRepository interface {
	Create(ctx context.Context, fuelType *model.FuelType) error
	FindByID(ctx context.Context, id int64) (*model.FuelType, error)
	List(ctx context.Context) ([]model.FuelType, error)
}

type fuelTypeRepository struct {
	db *gorm.DB
}

func NewFuelTypeRepository(db *gorm.DB) FuelTypeRepository {
	return &fuelTypeRepository{db: db}
}

func (r *fuelTypeRepository) Create(ctx context.Context, fuelType *model.FuelType) error {
	return GetDB(ctx, r.db).Create(fuelType).Error
}

func (r *fuelTypeRepository) FindByID(ctx context.Context, id int64) (*model.FuelType, error) {
	var fuelType model.FuelType
	if err := GetDB(ctx, r.db).First(&fuelType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fuelType, nil
}

func (r *fuelTypeRepository) List(ctx context.Context) ([]model.FuelType, error) {
	var fuelTypes []model.FuelType
	if err := GetDB(ctx, r.db).Order("name").Find(&fuelTypes).Error; err != nil {
		return nil, err
	}
	return fuelTypes, nil
}
