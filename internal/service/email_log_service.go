package service

import (
	"context"
	"encoding/json"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"
)

// DefaultEmailLogLimit is the page size of the email log listing.
const DefaultEmailLogLimit = 50

type EmailLogResponse struct {
	ID            int64           `json:"id"`
	OperatorID    int64           `json:"operator_id"`
	OperatorName  string          `json:"operator_name"`
	OperatorEmail string          `json:"operator_email"`
	SentAt        string          `json:"sent_at"`
	Status        string          `json:"status"`
	ErrorMessage  *string         `json:"error_message"`
	PriceData     json.RawMessage `json:"price_data"`
}

type EmailLogService interface {
	ListEmailLogs(ctx context.Context, status string, page, limit int) ([]EmailLogResponse, int64, error)
}

type emailLogService struct {
	repo repository.EmailLogRepository
}

func NewEmailLogService(repo repository.EmailLogRepository) EmailLogService {
	return &emailLogService{repo: repo}
}

func (s *emailLogService) ListEmailLogs(ctx context.Context, status string, page, limit int) ([]EmailLogResponse, int64, error) {
	switch status {
	case "", model.EmailStatusSent, model.EmailStatusError:
	default:
		return nil, 0, validationError("status must be %q or %q", model.EmailStatusSent, model.EmailStatusError)
	}

	logs, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, storeError(err, "email logs")
	}

	res := make([]EmailLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toEmailLogResponse(l))
	}
	return res, total, nil
}

func toEmailLogResponse(l model.EmailLog) EmailLogResponse {
	res := EmailLogResponse{
		ID:           l.ID,
		OperatorID:   l.OperatorID,
		SentAt:       l.SentAt.Format(time.RFC3339),
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		PriceData:    json.RawMessage(l.PriceData),
	}
	if len(res.PriceData) == 0 {
		res.PriceData = json.RawMessage("[]")
	}
	if l.Operator != nil {
		res.OperatorName = l.Operator.FullName()
		res.OperatorEmail = l.Operator.Email
	}
	return res
}
