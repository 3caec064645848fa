package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	UserEmail  string          `json:"user_email"`
	Action     string          `json:"action"`
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  string          `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, action, page, limit)
	if err != nil {
		return nil, 0, storeError(err, "audit logs")
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		item := AuditLogResponse{
			ID:         l.ID.String(),
			UserEmail:  "System",
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    json.RawMessage(l.Details),
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		}
		if l.UserID != nil {
			item.UserID = l.UserID.String()
		}
		if l.User != nil {
			item.UserEmail = l.User.Email
		}
		if len(item.Details) == 0 {
			item.Details = json.RawMessage("null")
		}
		res = append(res, item)
	}
	return res, total, nil
}

// auditTrail writes audit entries for mutating services. Entries are
// written through the request context so they join the caller's transaction.
type auditTrail struct {
	repo repository.AuditRepository
}

func (a auditTrail) record(ctx context.Context, userID, action string, entityID int64, entityName string, details interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	entry := model.AuditLog{
		Action:     action,
		EntityID:   strconv.FormatInt(entityID, 10),
		EntityName: entityName,
		Details:    datatypes.JSON(payload),
	}
	if parsed, err := uuid.Parse(userID); err == nil {
		entry.UserID = &parsed
	}
	return a.repo.Log(ctx, &entry)
}
