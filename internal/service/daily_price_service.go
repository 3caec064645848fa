package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fuelprice/internal/export"
	"fuelprice/internal/mailer"
	"fuelprice/internal/model"
	"fuelprice/internal/observability/metrics"
	"fuelprice/internal/pricing"
	"fuelprice/internal/repository"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EmailError describes one operator whose price email could not be sent.
type EmailError struct {
	OperatorID    int64  `json:"operatorId"`
	OperatorEmail string `json:"operatorEmail"`
	Error         string `json:"error"`
}

// DailyResult is returned by the daily-prices job.
type DailyResult struct {
	Success            bool         `json:"success"`
	Date               string       `json:"date"`
	OperatorsProcessed int          `json:"operatorsProcessed"`
	EmailsSent         int          `json:"emailsSent"`
	EmailErrors        []EmailError `json:"emailErrors"`
}

// DailyPreview is the calculator output for today, without delivery.
type DailyPreview struct {
	Date    string                        `json:"date"`
	Results []pricing.OperatorPriceResult `json:"results"`
}

type DailyPriceService interface {
	// CalculateAndSend prices every located operator against today's rack
	// prices and emails each one in turn. A failed send is logged and the
	// batch moves on.
	CalculateAndSend(ctx context.Context) (*DailyResult, error)
	Preview(ctx context.Context) (*DailyPreview, error)
	PriceSheet(ctx context.Context, format string) (*export.File, error)
}

type dailyPriceService struct {
	rackPrices repository.RackPriceRepository
	operators  repository.OperatorRepository
	taxRates   repository.TaxRateRepository
	emailLogs  repository.EmailLogRepository
	sender     mailer.Sender
	from       string
	events     EventPublisher
	clock      Clock
	log        *zap.Logger
}

type DailyPriceDeps struct {
	RackPrices repository.RackPriceRepository
	Operators  repository.OperatorRepository
	TaxRates   repository.TaxRateRepository
	EmailLogs  repository.EmailLogRepository
	Sender     mailer.Sender
	From       string
	Events     EventPublisher
	Clock      Clock
	Log        *zap.Logger
}

func NewDailyPriceService(deps DailyPriceDeps) DailyPriceService {
	s := &dailyPriceService{
		rackPrices: deps.RackPrices,
		operators:  deps.Operators,
		taxRates:   deps.TaxRates,
		emailLogs:  deps.EmailLogs,
		sender:     deps.Sender,
		from:       deps.From,
		events:     deps.Events,
		clock:      deps.Clock,
		log:        deps.Log,
	}
	if s.events == nil {
		s.events = nopPublisher{}
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("daily_prices")
	return s
}

func (s *dailyPriceService) Preview(ctx context.Context) (*DailyPreview, error) {
	today := Today(s.clock)
	day := today.Format(time.DateOnly)

	rackPrices, err := s.rackPrices.ListByDate(ctx, today)
	if err != nil {
		return nil, storeError(err, "rack prices")
	}
	if len(rackPrices) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoRackPrices, day)
	}

	operators, err := s.operators.ListWithLocation(ctx)
	if err != nil {
		return nil, storeError(err, "operators")
	}
	if len(operators) == 0 {
		return nil, ErrNoOperators
	}

	taxRates, err := s.taxRates.List(ctx)
	if err != nil {
		return nil, storeError(err, "tax rates")
	}

	results, err := pricing.Calculate(toPricingOperators(operators), toPricingRackPrices(rackPrices), toPricingTaxRates(taxRates))
	if err != nil {
		return nil, err
	}
	return &DailyPreview{Date: day, Results: results}, nil
}

func (s *dailyPriceService) CalculateAndSend(ctx context.Context) (res *DailyResult, err error) {
	started := time.Now()
	defer func() { metrics.ObserveDailyJob(err, time.Since(started)) }()

	preview, err := s.Preview(ctx)
	if err != nil {
		s.log.Warn("daily price job aborted", zap.Error(err))
		return nil, err
	}

	res = &DailyResult{
		Date:        preview.Date,
		EmailErrors: make([]EmailError, 0),
	}

	// Once sending starts the batch runs to the end, so every operator gets
	// an attempt and a log row even if the caller goes away.
	batchCtx := context.WithoutCancel(ctx)
	sentOn := s.clock.Now().UTC()
	for _, result := range preview.Results {
		sendErr := s.deliver(batchCtx, result, sentOn)
		s.writeLog(batchCtx, result, sendErr)
		if sendErr != nil {
			s.log.Warn("price email failed",
				zap.Int64("operator_id", result.OperatorID),
				zap.String("email", result.OperatorEmail),
				zap.Error(sendErr),
			)
			failure := EmailError{OperatorID: result.OperatorID, OperatorEmail: result.OperatorEmail, Error: sendErr.Error()}
			res.EmailErrors = append(res.EmailErrors, failure)
			s.events.Publish(EventEmailFailed, failure)
		}
	}

	res.Success = true
	res.OperatorsProcessed = len(preview.Results)
	res.EmailsSent = res.OperatorsProcessed - len(res.EmailErrors)

	s.log.Info("daily prices sent",
		zap.String("date", res.Date),
		zap.Int("operators", res.OperatorsProcessed),
		zap.Int("sent", res.EmailsSent),
		zap.Int("failed", len(res.EmailErrors)),
	)
	s.events.Publish(EventDailyPricesSent, res)
	return res, nil
}

func (s *dailyPriceService) PriceSheet(ctx context.Context, format string) (file *export.File, err error) {
	defer func() { metrics.IncExport(format, err) }()

	if format != export.FormatXLSX && format != export.FormatPDF {
		return nil, validationError("format must be xlsx or pdf")
	}
	preview, err := s.Preview(ctx)
	if err != nil {
		return nil, err
	}
	return export.Build(export.PriceSheet{Date: preview.Date, Results: preview.Results}, format)
}

func (s *dailyPriceService) deliver(ctx context.Context, result pricing.OperatorPriceResult, sentOn time.Time) error {
	msg, err := mailer.Compose(result, s.from, sentOn)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, msg)
}

// writeLog records the attempt. A failed write is logged and does not stop
// the batch.
func (s *dailyPriceService) writeLog(ctx context.Context, result pricing.OperatorPriceResult, sendErr error) {
	entry := model.EmailLog{
		OperatorID: result.OperatorID,
		Status:     model.EmailStatusSent,
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = model.EmailStatusError
		entry.ErrorMessage = &msg
	}
	metrics.IncEmail(entry.Status)

	if data, err := json.Marshal(result.Prices); err == nil {
		entry.PriceData = datatypes.JSON(data)
	}

	if err := s.emailLogs.Create(ctx, &entry); err != nil {
		s.log.Error("email log write failed", zap.Int64("operator_id", result.OperatorID), zap.Error(err))
	}
}

// --- model to calculator conversion ---

func toPricingOperators(operators []model.Operator) []pricing.Operator {
	out := make([]pricing.Operator, 0, len(operators))
	for _, o := range operators {
		if o.Location == nil {
			continue
		}
		out = append(out, pricing.Operator{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Email:     o.Email,
			Location: pricing.Location{
				ID:         o.Location.ID,
				Name:       o.Location.Name,
				ProvinceID: o.Location.ProvinceID,
			},
			Discount: o.Discount.InexactFloat64(),
		})
	}
	return out
}

func toPricingRackPrices(prices []model.RackPrice) []pricing.RackPrice {
	out := make([]pricing.RackPrice, 0, len(prices))
	for _, p := range prices {
		ft := pricing.FuelType{ID: p.FuelTypeID}
		if p.FuelType != nil {
			ft.Name = p.FuelType.Name
		}
		out = append(out, pricing.RackPrice{
			LocationID: p.LocationID,
			FuelType:   ft,
			BasePrice:  p.BasePrice.InexactFloat64(),
		})
	}
	return out
}

func toPricingTaxRates(rates []model.TaxRate) []pricing.TaxRate {
	out := make([]pricing.TaxRate, 0, len(rates))
	for _, r := range rates {
		ft := pricing.FuelType{ID: r.FuelTypeID}
		if r.FuelType != nil {
			ft.Name = r.FuelType.Name
		}
		out = append(out, pricing.TaxRate{
			ProvinceID:        r.ProvinceID,
			FuelType:          ft,
			CarbonTax:         r.CarbonTax.InexactFloat64(),
			ProvincialRoadTax: r.ProvincialRoadTax.InexactFloat64(),
			FederalExciseTax:  r.FederalExciseTax.InexactFloat64(),
		})
	}
	return out
}
