package repository

import (
	"context"

	"fuelprice/internal/model"

	"gorm.io/gorm"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator *model.Operator) error
	Update(ctx context.Context, operator *model.Operator) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Operator, error)
	FindByEmail(ctx context.Context, email string) (*model.Operator, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Operator, int64, error)
	ListWithLocation(ctx context.Context) ([]model.Operator, error)
	Count(ctx context.Context) (int64, error)
}

type operatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(ctx context.Context, operator *model.Operator) error {
	return GetDB(ctx, r.db).Omit("Location").Create(operator).Error
}

func (r *operatorRepository) Update(ctx context.Context, operator *model.Operator) error {
	return GetDB(ctx, r.db).Omit("Location").Save(operator).Error
}

func (r *operatorRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Operator{}).Error
}

func (r *operatorRepository) FindByID(ctx context.Context, id int64) (*model.Operator, error) {
	var operator model.Operator
	if err := GetDB(ctx, r.db).Preload("Location").First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) FindByEmail(ctx context.Context, email string) (*model.Operator, error) {
	var operator model.Operator
	if err := GetDB(ctx, r.db).First(&operator, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) List(ctx context.Context, search string, page, limit int) ([]model.Operator, int64, error) {
	var operators []model.Operator
	var total int64

	filter := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + search + "%"
		return db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Operator{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Model(&model.Operator{}).Scopes(filter).
		Preload("Location").
		Order("last_name, first_name").
		Offset(offset).Limit(limit).
		Find(&operators).Error; err != nil {
		return nil, 0, err
	}

	return operators, total, nil
}

// ListWithLocation returns the operators that can be priced: those with a
// location, with the location preloaded.
func (r *operatorRepository) ListWithLocation(ctx context.Context) ([]model.Operator, error) {
	var operators []model.Operator
	if err := GetDB(ctx, r.db).
		Preload("Location").
		Where("location_id IS NOT NULL").
		Order("id").
		Find(&operators).Error; err != nil {
		return nil, err
	}
	return operators, nil
}

func (r *operatorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Operator{}).Count(&count).Error
	return count, err
}
