package service

import (
	"context"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/repository"
)

// LatestRackPricesLimit caps the listing when no date is requested.
const LatestRackPricesLimit = 20

type RackPriceResponse struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
	FuelTypeID   int64  `json:"fuel_type_id"`
	FuelTypeName string `json:"fuel_type_name"`
	BasePrice    string `json:"base_price"`
}

type RackPriceService interface {
	// ListRackPrices returns the prices of date (YYYY-MM-DD), or the latest
	// prices across all dates when date is empty.
	ListRackPrices(ctx context.Context, date string) ([]RackPriceResponse, error)
}

type rackPriceService struct {
	repo repository.RackPriceRepository
}

func NewRackPriceService(repo repository.RackPriceRepository) RackPriceService {
	return &rackPriceService{repo: repo}
}

func (s *rackPriceService) ListRackPrices(ctx context.Context, date string) ([]RackPriceResponse, error) {
	var (
		prices []model.RackPrice
		err    error
	)
	if date != "" {
		day, perr := time.Parse(time.DateOnly, date)
		if perr != nil {
			return nil, validationError("invalid date format (expected YYYY-MM-DD)")
		}
		prices, err = s.repo.ListByDate(ctx, day)
	} else {
		prices, err = s.repo.ListLatest(ctx, LatestRackPricesLimit)
	}
	if err != nil {
		return nil, storeError(err, "rack prices")
	}

	res := make([]RackPriceResponse, 0, len(prices))
	for _, p := range prices {
		item := RackPriceResponse{
			ID:         p.ID,
			Date:       p.Date.Format(time.DateOnly),
			LocationID: p.LocationID,
			FuelTypeID: p.FuelTypeID,
			BasePrice:  p.BasePrice.String(),
		}
		if p.Location != nil {
			item.LocationName = p.Location.Name
		}
		if p.FuelType != nil {
			item.FuelTypeName = p.FuelType.Name
		}
		res = append(res, item)
	}
	return res, nil
}
