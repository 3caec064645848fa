package repository

import (
	"context"
	"time"

	"fuelprice/internal/model"

	"gorm.io/gorm"
)

type EmailLogRepository interface {
	Create(ctx context.Context, entry *model.EmailLog) error
	List(ctx context.Context, status string, page, limit int) ([]model.EmailLog, int64, error)
	ListRecentErrors(ctx context.Context, limit int) ([]model.EmailLog, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type emailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, entry *model.EmailLog) error {
	return GetDB(ctx, r.db).Omit("Operator").Create(entry).Error
}

// List returns logs newest first, optionally filtered by status.
func (r *emailLogRepository) List(ctx context.Context, status string, page, limit int) ([]model.EmailLog, int64, error) {
	var logs []model.EmailLog
	var total int64

	db := GetDB(ctx, r.db)
	count := db.Model(&model.EmailLog{})
	if status != "" {
		count = count.Where("status = ?", status)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	fetch := db.Model(&model.EmailLog{}).Preload("Operator")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	offset := (page - 1) * limit
	if err := fetch.Order("sent_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *emailLogRepository) ListRecentErrors(ctx context.Context, limit int) ([]model.EmailLog, error) {
	var logs []model.EmailLog
	if err := GetDB(ctx, r.db).
		Preload("Operator").
		Where("status = ?", model.EmailStatusError).
		Order("sent_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *emailLogRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.EmailLog{}).Where("sent_at >= ?", since).Count(&count).Error
	return count, err
}
