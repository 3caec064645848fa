package repository

import (
	"context"
	"time"

	"fuelprice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RackPriceRepository interface {
	Upsert(ctx context.Context, price *model.RackPrice) error
	ListByDate(ctx context.Context, date time.Time) ([]model.RackPrice, error)
	ListLatest(ctx context.Context, limit int) ([]model.RackPrice, error)
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}

type rackPriceRepository struct {
	db *gorm.DB
}

func NewRackPriceRepository(db *gorm.DB) RackPriceRepository {
	return &rackPriceRepository{db: db}
}

// Upsert inserts the price or replaces base_price of the existing
// (date, location, fuel type) row.
func (r *rackPriceRepository) Upsert(ctx context.Context, price *model.RackPrice) error {
	return GetDB(ctx, r.db).
		Omit("Location", "FuelType").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "location_id"}, {Name: "fuel_type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_price", "updated_at"}),
		}).
		Create(price).Error
}

func (r *rackPriceRepository) ListByDate(ctx context.Context, date time.Time) ([]model.RackPrice, error) {
	var prices []model.RackPrice
	if err := GetDB(ctx, r.db).
		Preload("Location").
		Preload("FuelType").
		Where("date = ?", date.Format(time.DateOnly)).
		Order("id").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *rackPriceRepository) ListLatest(ctx context.Context, limit int) ([]model.RackPrice, error) {
	var prices []model.RackPrice
	if err := GetDB(ctx, r.db).
		Preload("Location").
		Preload("FuelType").
		Order("date DESC, id").
		Limit(limit).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *rackPriceRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.RackPrice{}).Where("date = ?", date.Format(time.DateOnly)).Count(&count).Error
	return count, err
}
