package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateOperatorRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	LocationID *int64 `json:"location_id"`
	Discount   string `json:"discount"` // decimal string, defaults to 0
}

// UpdateOperatorRequest applies only the fields that are sent. ClearLocation
// detaches the operator from its location.
type UpdateOperatorRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	LocationID    *int64  `json:"location_id"`
	ClearLocation bool    `json:"clear_location"`
	Discount      *string `json:"discount"`
}

type OperatorResponse struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	LocationID   *int64  `json:"location_id"`
	LocationName *string `json:"location_name"`
	Discount     string  `json:"discount"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// --- Interface ---

type OperatorService interface {
	ListOperators(ctx context.Context, search string, page, limit int) ([]OperatorResponse, int64, error)
	GetOperator(ctx context.Context, id int64) (OperatorResponse, error)
	CreateOperator(ctx context.Context, req CreateOperatorRequest, userID string) (OperatorResponse, error)
	UpdateOperator(ctx context.Context, id int64, req UpdateOperatorRequest, userID string) (OperatorResponse, error)
	DeleteOperator(ctx context.Context, id int64, userID string) error
}

type operatorService struct {
	operators repository.OperatorRepository
	locations repository.LocationRepository
	txManager repository.TransactionManager
	audit     auditTrail
}

func NewOperatorService(
	operators repository.OperatorRepository,
	locations repository.LocationRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) OperatorService {
	return &operatorService{
		operators: operators,
		locations: locations,
		txManager: txManager,
		audit:     auditTrail{repo: auditRepo},
	}
}

// --- Implementation ---

func (s *operatorService) ListOperators(ctx context.Context, search string, page, limit int) ([]OperatorResponse, int64, error) {
	operators, total, err := s.operators.List(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, 0, storeError(err, "operators")
	}
	res := make([]OperatorResponse, 0, len(operators))
	for _, o := range operators {
		res = append(res, toOperatorResponse(o))
	}
	return res, total, nil
}

func (s *operatorService) GetOperator(ctx context.Context, id int64) (OperatorResponse, error) {
	operator, err := s.operators.FindByID(ctx, id)
	if err != nil {
		return OperatorResponse{}, storeError(err, "operator")
	}
	return toOperatorResponse(*operator), nil
}

func (s *operatorService) CreateOperator(ctx context.Context, req CreateOperatorRequest, userID string) (OperatorResponse, error) {
	operator := &model.Operator{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if operator.FirstName == "" || operator.LastName == "" {
		return OperatorResponse{}, validationError("first_name and last_name are required")
	}

	email, err := s.checkEmail(ctx, req.Email, 0)
	if err != nil {
		return OperatorResponse{}, err
	}
	operator.Email = email

	discount, err := parseDiscount(req.Discount)
	if err != nil {
		return OperatorResponse{}, err
	}
	operator.Discount = discount

	if req.LocationID != nil {
		if err := s.attachLocation(ctx, operator, *req.LocationID); err != nil {
			return OperatorResponse{}, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.operators.Create(txCtx, operator); err != nil {
			return storeError(err, "operator")
		}
		return s.audit.record(txCtx, userID, model.ActionCreateOperator, operator.ID, operator.FullName(), req)
	})
	if err != nil {
		return OperatorResponse{}, err
	}
	return toOperatorResponse(*operator), nil
}

func (s *operatorService) UpdateOperator(ctx context.Context, id int64, req UpdateOperatorRequest, userID string) (OperatorResponse, error) {
	operator, err := s.operators.FindByID(ctx, id)
	if err != nil {
		return OperatorResponse{}, storeError(err, "operator")
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return OperatorResponse{}, validationError("first_name cannot be empty")
		}
		operator.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return OperatorResponse{}, validationError("last_name cannot be empty")
		}
		operator.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email, err := s.checkEmail(ctx, *req.Email, operator.ID)
		if err != nil {
			return OperatorResponse{}, err
		}
		operator.Email = email
	}
	if req.Discount != nil {
		discount, err := parseDiscount(*req.Discount)
		if err != nil {
			return OperatorResponse{}, err
		}
		operator.Discount = discount
	}
	switch {
	case req.ClearLocation:
		operator.LocationID = nil
		operator.Location = nil
	case req.LocationID != nil:
		if err := s.attachLocation(ctx, operator, *req.LocationID); err != nil {
			return OperatorResponse{}, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.operators.Update(txCtx, operator); err != nil {
			return storeError(err, "operator")
		}
		return s.audit.record(txCtx, userID, model.ActionUpdateOperator, operator.ID, operator.FullName(), req)
	})
	if err != nil {
		return OperatorResponse{}, err
	}
	return toOperatorResponse(*operator), nil
}

func (s *operatorService) DeleteOperator(ctx context.Context, id int64, userID string) error {
	operator, err := s.operators.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "operator")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.operators.Delete(txCtx, id); err != nil {
			return storeError(err, "operator")
		}
		return s.audit.record(txCtx, userID, model.ActionDeleteOperator, id, operator.FullName(), map[string]string{"email": operator.Email})
	})
}

// --- Helpers ---

// checkEmail validates the address and makes sure no other operator uses it.
func (s *operatorService) checkEmail(ctx context.Context, raw string, selfID int64) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", validationError("invalid email format")
	}
	email := strings.ToLower(addr.Address)

	existing, err := s.operators.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return "", fmt.Errorf("operator with email %s %w", email, ErrConflict)
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return "", storeError(err, "operator")
	}
	return email, nil
}

func (s *operatorService) attachLocation(ctx context.Context, operator *model.Operator, locationID int64) error {
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return storeError(err, "location")
	}
	operator.LocationID = &location.ID
	operator.Location = location
	return nil
}

func parseDiscount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, validationError("discount must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, validationError("discount must not be negative")
	}
	return d, nil
}

func toOperatorResponse(o model.Operator) OperatorResponse {
	res := OperatorResponse{
		ID:         o.ID,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		FullName:   o.FullName(),
		Email:      o.Email,
		LocationID: o.LocationID,
		Discount:   o.Discount.StringFixed(4),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  o.UpdatedAt.Format(time.RFC3339),
	}
	if o.Location != nil {
		name := o.Location.Name
		res.LocationName = &name
	}
	return res
}
