package service

import (
	"context"
	"fmt"
	"time"

	"fuelprice/internal/model"
	"fuelprice/internal/observability/metrics"
	"fuelprice/internal/ratefeed"
	"fuelprice/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IngestResult is returned by the fetch-prices job. Field names follow the
// dashboard's camelCase contract.
type IngestResult struct {
	Success   bool     `json:"success"`
	Date      string   `json:"date"`
	TotalRows int      `json:"totalRows"`
	Inserted  int      `json:"inserted"`
	Errors    []string `json:"errors"`
}

// FeedSource yields the rows of the rack price feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]ratefeed.Row, error)
}

type IngestService interface {
	// FetchAndStore downloads the feed and upserts every resolvable row under
	// today's date. Bad rows are reported in the result and do not fail the run.
	FetchAndStore(ctx context.Context) (*IngestResult, error)
}

type ingestService struct {
	feed       FeedSource
	locations  repository.LocationRepository
	fuelTypes  repository.FuelTypeRepository
	rackPrices repository.RackPriceRepository
	events     EventPublisher
	clock      Clock
	log        *zap.Logger
}

func NewIngestService(
	feed FeedSource,
	locations repository.LocationRepository,
	fuelTypes repository.FuelTypeRepository,
	rackPrices repository.RackPriceRepository,
	events EventPublisher,
	clock Clock,
	log *zap.Logger,
) IngestService {
	if events == nil {
		events = nopPublisher{}
	}
	if clock == nil {
		clock = systemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ingestService{
		feed:       feed,
		locations:  locations,
		fuelTypes:  fuelTypes,
		rackPrices: rackPrices,
		events:     events,
		clock:      clock,
		log:        log.Named("ingest"),
	}
}

func (s *ingestService) FetchAndStore(ctx context.Context) (res *IngestResult, err error) {
	started := time.Now()
	defer func() { metrics.ObserveFeedFetch(err, time.Since(started)) }()

	today := Today(s.clock)

	rows, err := s.feed.Fetch(ctx)
	if err != nil {
		s.log.Warn("rack price feed unavailable", zap.Error(err))
		return nil, err
	}

	locationIDs, fuelTypeIDs, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}

	res = &IngestResult{
		Date:      today.Format(time.DateOnly),
		TotalRows: len(rows),
		Errors:    make([]string, 0),
	}

	for _, row := range rows {
		locationID, ok := locationIDs[row.Location]
		if !ok {
			res.Errors = append(res.Errors, "Location not found: "+row.Location)
			continue
		}
		fuelTypeID, ok := fuelTypeIDs[row.FuelType]
		if !ok {
			res.Errors = append(res.Errors, "Fuel type not found: "+row.FuelType)
			continue
		}
		price, perr := decimal.NewFromString(row.Price)
		if perr != nil {
			res.Errors = append(res.Errors, "Invalid price format: "+row.Price)
			continue
		}

		rp := &model.RackPrice{
			Date:       today,
			LocationID: locationID,
			FuelTypeID: fuelTypeID,
			BasePrice:  price,
		}
		if uerr := s.rackPrices.Upsert(ctx, rp); uerr != nil {
			s.log.Error("rack price upsert failed", zap.Int("line", row.Line), zap.Error(uerr))
			res.Errors = append(res.Errors, "Database error: "+uerr.Error())
			continue
		}
		res.Inserted++
	}
	res.Success = true

	metrics.AddIngestRows("inserted", res.Inserted)
	metrics.AddIngestRows("rejected", len(res.Errors))
	s.log.Info("rack prices ingested",
		zap.String("date", res.Date),
		zap.Int("rows", res.TotalRows),
		zap.Int("inserted", res.Inserted),
		zap.Int("errors", len(res.Errors)),
	)
	s.events.Publish(EventRackPricesIngested, res)

	return res, nil
}

// lookups loads the name to id maps used to resolve feed rows.
func (s *ingestService) lookups(ctx context.Context) (map[string]int64, map[string]int64, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load locations: %w", err)
	}
	fuelTypes, err := s.fuelTypes.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load fuel types: %w", err)
	}

	locationIDs := make(map[string]int64, len(locations))
	for _, l := range locations {
		locationIDs[l.Name] = l.ID
	}
	fuelTypeIDs := make(map[string]int64, len(fuelTypes))
	for _, f := range fuelTypes {
		fuelTypeIDs[f.Name] = f.ID
	}
	return locationIDs, fuelTypeIDs, nil
}
