package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fuelprice/internal/mailer"
	"fuelprice/internal/model"
	"fuelprice/internal/ratefeed"
	"fuelprice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories. Methods a test does not need
// fall through to the embedded nil interface and panic.

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeFeed struct {
	rows []ratefeed.Row
	err  error
}

func (f fakeFeed) Fetch(context.Context) ([]ratefeed.Row, error) { return f.rows, f.err }

type fakeLocations struct {
	repository.LocationRepository
	items map[int64]*model.Location
}

func (f *fakeLocations) List(context.Context) ([]model.Location, error) {
	out := make([]model.Location, 0, len(f.items))
	for _, l := range f.items {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocations) FindByID(_ context.Context, id int64) (*model.Location, error) {
	if l, ok := f.items[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeFuelTypes struct {
	repository.FuelTypeRepository
	items map[int64]*model.FuelType
}

func (f *fakeFuelTypes) List(context.Context) ([]model.FuelType, error) {
	out := make([]model.FuelType, 0, len(f.items))
	for _, ft := range f.items {
		out = append(out, *ft)
	}
	return out, nil
}

func (f *fakeFuelTypes) FindByID(_ context.Context, id int64) (*model.FuelType, error) {
	if ft, ok := f.items[id]; ok {
		return ft, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProvinces struct {
	repository.ProvinceRepository
	items map[int64]*model.Province
}

func (f *fakeProvinces) FindByID(_ context.Context, id int64) (*model.Province, error) {
	if p, ok := f.items[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRackPrices struct {
	repository.RackPriceRepository
	upserted  []model.RackPrice
	byDate    []model.RackPrice
	failOn    string
	listedFor time.Time
}

func (f *fakeRackPrices) Upsert(_ context.Context, price *model.RackPrice) error {
	if f.failOn != "" && price.BasePrice.String() == f.failOn {
		return errors.New("connection reset")
	}
	f.upserted = append(f.upserted, *price)
	return nil
}

func (f *fakeRackPrices) ListByDate(_ context.Context, date time.Time) ([]model.RackPrice, error) {
	f.listedFor = date
	return f.byDate, nil
}

type fakeOperators struct {
	repository.OperatorRepository
	items   []model.Operator
	created []model.Operator
	updated []model.Operator
}

func (f *fakeOperators) ListWithLocation(context.Context) ([]model.Operator, error) {
	return f.items, nil
}

func (f *fakeOperators) FindByEmail(_ context.Context, email string) (*model.Operator, error) {
	for i := range f.items {
		if strings.EqualFold(f.items[i].Email, email) {
			return &f.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOperators) FindByID(_ context.Context, id int64) (*model.Operator, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			op := f.items[i]
			return &op, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOperators) Create(_ context.Context, o *model.Operator) error {
	o.ID = int64(100 + len(f.created))
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeOperators) Update(_ context.Context, o *model.Operator) error {
	f.updated = append(f.updated, *o)
	return nil
}

type fakeTaxRates struct {
	repository.TaxRateRepository
	items   []model.TaxRate
	created []model.TaxRate
}

func (f *fakeTaxRates) List(context.Context) ([]model.TaxRate, error) { return f.items, nil }

func (f *fakeTaxRates) FindByProvinceAndFuelType(_ context.Context, provinceID, fuelTypeID int64) (*model.TaxRate, error) {
	for i := range f.items {
		if f.items[i].ProvinceID == provinceID && f.items[i].FuelTypeID == fuelTypeID {
			return &f.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaxRates) Create(_ context.Context, r *model.TaxRate) error {
	r.ID = int64(len(f.items) + 1)
	f.created = append(f.created, *r)
	return nil
}

type fakeEmailLogs struct {
	repository.EmailLogRepository
	entries []model.EmailLog
	err     error
}

func (f *fakeEmailLogs) Create(_ context.Context, entry *model.EmailLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeAudit struct {
	repository.AuditRepository
	entries []model.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.byEmail[u.Email] = u
	return nil
}

// recordingSender fails for the addresses listed in failFor.
type recordingSender struct {
	failFor map[string]error
	sent    []mailer.Message
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	if err, ok := s.failFor[msg.To]; ok {
		return err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(event string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
