package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"
)

// --- DTOs ---

type CreateProvinceRequest struct {
	Name string `json:"name" binding:"required"`
}

type ProvinceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LocationRequest struct {
	Name       string `json:"name" binding:"required"`
	ProvinceID int64  `json:"province_id" binding:"required"`
}

type LocationResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProvinceID   int64  `json:"province_id"`
	ProvinceName string `json:"province_name"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateFuelTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

type FuelTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// --- Interface ---

// CatalogService manages the reference data that feed rows and tax rates
// point at: provinces, locations and fuel types.
type CatalogService interface {
	ListProvinces(ctx context.Context) ([]ProvinceResponse, error)
	CreateProvince(ctx context.Context, req CreateProvinceRequest) (ProvinceResponse, error)

	ListLocations(ctx context.Context) ([]LocationResponse, error)
	CreateLocation(ctx context.Context, req LocationRequest, userID string) (LocationResponse, error)
	UpdateLocation(ctx context.Context, id int64, req LocationRequest, userID string) (LocationResponse, error)
	DeleteLocation(ctx context.Context, id int64, userID string) error

	ListFuelTypes(ctx context.Context) ([]FuelTypeResponse, error)
	CreateFuelType(ctx context.Context, req CreateFuelTypeRequest) (FuelTypeResponse, error)
}

type catalogService struct {
	provinces repository.ProvinceRepository
	locations repository.LocationRepository
	fuelTypes repository.FuelTypeRepository
	txManager repository.TransactionManager
	audit     auditTrail
}

func NewCatalogService(
	provinces repository.ProvinceRepository,
	locations repository.LocationRepository,
	fuelTypes repository.FuelTypeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		provinces: provinces,
		locations: locations,
		fuelTypes: fuelTypes,
		txManager: txManager,
		audit:     auditTrail{repo: auditRepo},
	}
}

// --- Provinces ---

func (s *catalogService) ListProvinces(ctx context.Context) ([]ProvinceResponse, error) {
	provinces, err := s.provinces.List(ctx)
	if err != nil {
		return nil, storeError(err, "provinces")
	}
	res := make([]ProvinceResponse, 0, len(provinces))
	for _, p := range provinces {
		res = append(res, ProvinceResponse{ID: p.ID, Name: p.Name})
	}
	return res, nil
}

func (s *catalogService) CreateProvince(ctx context.Context, req CreateProvinceRequest) (ProvinceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ProvinceResponse{}, validationError("name is required")
	}
	province := &model.Province{Name: name}
	if err := s.provinces.Create(ctx, province); err != nil {
		return ProvinceResponse{}, storeError(err, "province")
	}
	return ProvinceResponse{ID: province.ID, Name: province.Name}, nil
}

// --- Locations ---

func (s *catalogService) ListLocations(ctx context.Context) ([]LocationResponse, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, storeError(err, "locations")
	}
	res := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		res = append(res, toLocationResponse(l))
	}
	return res, nil
}

func (s *catalogService) CreateLocation(ctx context.Context, req LocationRequest, userID string) (LocationResponse, error) {
	location := &model.Location{}
	if err := s.applyLocation(ctx, location, req); err != nil {
		return LocationResponse{}, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locations.Create(txCtx, location); err != nil {
			return storeError(err, "location")
		}
		return s.audit.record(txCtx, userID, model.ActionCreateLocation, location.ID, location.Name, req)
	})
	if err != nil {
		return LocationResponse{}, err
	}
	return toLocationResponse(*location), nil
}

func (s *catalogService) UpdateLocation(ctx context.Context, id int64, req LocationRequest, userID string) (LocationResponse, error) {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return LocationResponse{}, storeError(err, "location")
	}
	if err := s.applyLocation(ctx, location, req); err != nil {
		return LocationResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locations.Update(txCtx, location); err != nil {
			return storeError(err, "location")
		}
		return s.audit.record(txCtx, userID, model.ActionUpdateLocation, location.ID, location.Name, req)
	})
	if err != nil {
		return LocationResponse{}, err
	}
	return toLocationResponse(*location), nil
}

// DeleteLocation refuses to remove a location that still has rack prices.
// Operators at the location are detached by the foreign key.
func (s *catalogService) DeleteLocation(ctx context.Context, id int64, userID string) error {
	location, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "location")
	}

	used, err := s.locations.CountRackPrices(ctx, id)
	if err != nil {
		return storeError(err, "location")
	}
	if used > 0 {
		return fmt.Errorf("location %q has %d rack prices: %w", location.Name, used, ErrInUse)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locations.Delete(txCtx, id); err != nil {
			return storeError(err, "location")
		}
		return s.audit.record(txCtx, userID, model.ActionDeleteLocation, id, location.Name, map[string]int64{"deleted_id": id})
	})
}

func (s *catalogService) applyLocation(ctx context.Context, location *model.Location, req LocationRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return validationError("name is required")
	}
	province, err := s.provinces.FindByID(ctx, req.ProvinceID)
	if err != nil {
		return storeError(err, "province")
	}
	location.Name = name
	location.ProvinceID = province.ID
	location.Province = province
	return nil
}

// --- Fuel types ---

func (s *catalogService) ListFuelTypes(ctx context.Context) ([]FuelTypeResponse, error) {
	fuelTypes, err := s.fuelTypes.List(ctx)
	if err != nil {
		return nil, storeError(err, "fuel types")
	}
	res := make([]FuelTypeResponse, 0, len(fuelTypes))
	for _, f := range fuelTypes {
		res = append(res, FuelTypeResponse{ID: f.ID, Name: f.Name})
	}
	return res, nil
}

func (s *catalogService) CreateFuelType(ctx context.Context, req CreateFuelTypeRequest) (FuelTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return FuelTypeResponse{}, validationError("name is required")
	}
	fuelType := &model.FuelType{Name: name}
	if err := s.fuelTypes.Create(ctx, fuelType); err != nil {
		return FuelTypeResponse{}, storeError(err, "fuel type")
	}
	return FuelTypeResponse{ID: fuelType.ID, Name: fuelType.Name}, nil
}

func toLocationResponse(l model.Location) LocationResponse {
	res := LocationResponse{
		ID:         l.ID,
		Name:       l.Name,
		ProvinceID: l.ProvinceID,
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Province != nil {
		res.ProvinceName = l.Province.Name
	}
	return res
}
