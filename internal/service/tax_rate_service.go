package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// Tax components are decimal strings in currency per litre, e.g. "0.0884".
type CreateTaxRateRequest struct {
	ProvinceID        int64  `json:"province_id" binding:"required"`
	FuelTypeID        int64  `json:"fuel_type_id" binding:"required"`
	CarbonTax         string `json:"carbon_tax" binding:"required"`
	ProvincialRoadTax string `json:"provincial_road_tax" binding:"required"`
	FederalExciseTax  string `json:"federal_excise_tax" binding:"required"`
}

type UpdateTaxRateRequest struct {
	CarbonTax         string `json:"carbon_tax" binding:"required"`
	ProvincialRoadTax string `json:"provincial_road_tax" binding:"required"`
	FederalExciseTax  string `json:"federal_excise_tax" binding:"required"`
}

type TaxRateResponse struct {
	ID                int64  `json:"id"`
	ProvinceID        int64  `json:"province_id"`
	ProvinceName      string `json:"province_name"`
	FuelTypeID        int64  `json:"fuel_type_id"`
	FuelTypeName      string `json:"fuel_type_name"`
	CarbonTax         string `json:"carbon_tax"`
	ProvincialRoadTax string `json:"provincial_road_tax"`
	FederalExciseTax  string `json:"federal_excise_tax"`
	TotalTax          string `json:"total_tax"`
	UpdatedAt         string `json:"updated_at"`
}

// --- Interface ---

type TaxRateService interface {
	ListTaxRates(ctx context.Context) ([]TaxRateResponse, error)
	GetTaxRate(ctx context.Context, id int64) (TaxRateResponse, error)
	CreateTaxRate(ctx context.Context, req CreateTaxRateRequest, userID string) (TaxRateResponse, error)
	UpdateTaxRate(ctx context.Context, id int64, req UpdateTaxRateRequest, userID string) (TaxRateResponse, error)
	DeleteTaxRate(ctx context.Context, id int64, userID string) error
}

type taxRateService struct {
	rates     repository.TaxRateRepository
	provinces repository.ProvinceRepository
	fuelTypes repository.FuelTypeRepository
	txManager repository.TransactionManager
	audit     auditTrail
}

func NewTaxRateService(
	rates repository.TaxRateRepository,
	provinces repository.ProvinceRepository,
	fuelTypes repository.FuelTypeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) TaxRateService {
	return &taxRateService{
		rates:     rates,
		provinces: provinces,
		fuelTypes: fuelTypes,
		txManager: txManager,
		audit:     auditTrail{repo: auditRepo},
	}
}

// --- Implementation ---

func (s *taxRateService) ListTaxRates(ctx context.Context) ([]TaxRateResponse, error) {
	rates, err := s.rates.List(ctx)
	if err != nil {
		return nil, storeError(err, "tax rates")
	}
	res := make([]TaxRateResponse, 0, len(rates))
	for _, r := range rates {
		res = append(res, toTaxRateResponse(r))
	}
	return res, nil
}

func (s *taxRateService) GetTaxRate(ctx context.Context, id int64) (TaxRateResponse, error) {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return TaxRateResponse{}, storeError(err, "tax rate")
	}
	return toTaxRateResponse(*rate), nil
}

func (s *taxRateService) CreateTaxRate(ctx context.Context, req CreateTaxRateRequest, userID string) (TaxRateResponse, error) {
	carbon, road, excise, err := parseTaxComponents(req.CarbonTax, req.ProvincialRoadTax, req.FederalExciseTax)
	if err != nil {
		return TaxRateResponse{}, err
	}

	province, err := s.provinces.FindByID(ctx, req.ProvinceID)
	if err != nil {
		return TaxRateResponse{}, storeError(err, "province")
	}
	fuelType, err := s.fuelTypes.FindByID(ctx, req.FuelTypeID)
	if err != nil {
		return TaxRateResponse{}, storeError(err, "fuel type")
	}

	// one rate per (province, fuel type)
	if _, err := s.rates.FindByProvinceAndFuelType(ctx, province.ID, fuelType.ID); err == nil {
		return TaxRateResponse{}, fmt.Errorf("tax rate for %s in %s %w", fuelType.Name, province.Name, ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TaxRateResponse{}, storeError(err, "tax rate")
	}

	rate := &model.TaxRate{
		ProvinceID:        province.ID,
		Province:          province,
		FuelTypeID:        fuelType.ID,
		FuelType:          fuelType,
		CarbonTax:         carbon,
		ProvincialRoadTax: road,
		FederalExciseTax:  excise,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Create(txCtx, rate); err != nil {
			return storeError(err, "tax rate")
		}
		return s.audit.record(txCtx, userID, model.ActionCreateTaxRate, rate.ID, taxRateLabel(rate), req)
	})
	if err != nil {
		return TaxRateResponse{}, err
	}
	return toTaxRateResponse(*rate), nil
}

func (s *taxRateService) UpdateTaxRate(ctx context.Context, id int64, req UpdateTaxRateRequest, userID string) (TaxRateResponse, error) {
	carbon, road, excise, err := parseTaxComponents(req.CarbonTax, req.ProvincialRoadTax, req.FederalExciseTax)
	if err != nil {
		return TaxRateResponse{}, err
	}

	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return TaxRateResponse{}, storeError(err, "tax rate")
	}

	before := map[string]string{
		"carbon_tax":          rate.CarbonTax.StringFixed(4),
		"provincial_road_tax": rate.ProvincialRoadTax.StringFixed(4),
		"federal_excise_tax":  rate.FederalExciseTax.StringFixed(4),
	}
	rate.CarbonTax = carbon
	rate.ProvincialRoadTax = road
	rate.FederalExciseTax = excise

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Update(txCtx, rate); err != nil {
			return storeError(err, "tax rate")
		}
		details := map[string]interface{}{"before": before, "after": req}
		return s.audit.record(txCtx, userID, model.ActionUpdateTaxRate, rate.ID, taxRateLabel(rate), details)
	})
	if err != nil {
		return TaxRateResponse{}, err
	}
	return toTaxRateResponse(*rate), nil
}

func (s *taxRateService) DeleteTaxRate(ctx context.Context, id int64, userID string) error {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "tax rate")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Delete(txCtx, id); err != nil {
			return storeError(err, "tax rate")
		}
		return s.audit.record(txCtx, userID, model.ActionDeleteTaxRate, id, taxRateLabel(rate), map[string]int64{"deleted_id": id})
	})
}

// --- Helpers ---

func parseTaxComponents(carbonStr, roadStr, exciseStr string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	parse := func(field, value string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, validationError("%s must be a number", field)
		}
		if d.IsNegative() {
			return decimal.Zero, validationError("%s must not be negative", field)
		}
		return d, nil
	}

	carbon, err := parse("carbon_tax", carbonStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	road, err := parse("provincial_road_tax", roadStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	excise, err := parse("federal_excise_tax", exciseStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return carbon, road, excise, nil
}

func taxRateLabel(r *model.TaxRate) string {
	label := fmt.Sprintf("province %d / fuel type %d", r.ProvinceID, r.FuelTypeID)
	if r.Province != nil && r.FuelType != nil {
		label = r.Province.Name + " / " + r.FuelType.Name
	}
	return label
}

func toTaxRateResponse(r model.TaxRate) TaxRateResponse {
	res := TaxRateResponse{
		ID:                r.ID,
		ProvinceID:        r.ProvinceID,
		FuelTypeID:        r.FuelTypeID,
		CarbonTax:         r.CarbonTax.StringFixed(4),
		ProvincialRoadTax: r.ProvincialRoadTax.StringFixed(4),
		FederalExciseTax:  r.FederalExciseTax.StringFixed(4),
		TotalTax:          r.CarbonTax.Add(r.ProvincialRoadTax).Add(r.FederalExciseTax).StringFixed(4),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Province != nil {
		res.ProvinceName = r.Province.Name
	}
	if r.FuelType != nil {
		res.FuelTypeName = r.FuelType.Name
	}
	return res
}
