package service

import (
	"context"
	"testing"

	"fuelprice/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminID = "0b5c7a4e-4f0e-4a84-9a5a-6d2b8a7f1c11"

func newTaxRateFixture() (TaxRateService, *fakeTaxRates, *fakeAudit) {
	rates := &fakeTaxRates{items: []model.TaxRate{{ID: 1, ProvinceID: 7, FuelTypeID: 1}}}
	provinces := &fakeProvinces{items: map[int64]*model.Province{7: {ID: 7, Name: "Ontario"}}}
	fuelTypes := &fakeFuelTypes{items: map[int64]*model.FuelType{
		1: {ID: 1, Name: "REG 87"},
		3: {ID: 3, Name: "SUP 91"},
	}}
	audit := &fakeAudit{}
	return NewTaxRateService(rates, provinces, fuelTypes, audit, fakeTx{}), rates, audit
}

func TestTaxRate_Create(t *testing.T) {
	svc, rates, audit := newTaxRateFixture()

	res, err := svc.CreateTaxRate(context.Background(), CreateTaxRateRequest{
		ProvinceID: 7, FuelTypeID: 3,
		CarbonTax: "0.0884", ProvincialRoadTax: "0.147", FederalExciseTax: "0.1",
	}, adminID)
	require.NoError(t, err)

	assert.Equal(t, "Ontario", res.ProvinceName)
	assert.Equal(t, "SUP 91", res.FuelTypeName)
	assert.Equal(t, "0.0884", res.CarbonTax)
	assert.Equal(t, "0.3354", res.TotalTax)
	require.Len(t, rates.created, 1)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCreateTaxRate, audit.entries[0].Action)
	assert.Equal(t, "Ontario / SUP 91", audit.entries[0].EntityName)
	require.NotNil(t, audit.entries[0].UserID)
	assert.Equal(t, uuid.MustParse(adminID), *audit.entries[0].UserID)
}

func TestTaxRate_CreateRejectsDuplicatePair(t *testing.T) {
	svc, rates, audit := newTaxRateFixture()

	_, err := svc.CreateTaxRate(context.Background(), CreateTaxRateRequest{
		ProvinceID: 7, FuelTypeID: 1,
		CarbonTax: "0", ProvincialRoadTax: "0", FederalExciseTax: "0",
	}, adminID)
	require.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, rates.created)
	assert.Empty(t, audit.entries)
}

func TestTaxRate_CreateValidatesComponents(t *testing.T) {
	svc, _, _ := newTaxRateFixture()

	cases := map[string]CreateTaxRateRequest{
		"not a number": {ProvinceID: 7, FuelTypeID: 3, CarbonTax: "abc", ProvincialRoadTax: "0", FederalExciseTax: "0"},
		"negative":     {ProvinceID: 7, FuelTypeID: 3, CarbonTax: "0", ProvincialRoadTax: "-0.01", FederalExciseTax: "0"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateTaxRate(context.Background(), req, adminID)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTaxRate_CreateUnknownProvince(t *testing.T) {
	svc, _, _ := newTaxRateFixture()

	_, err := svc.CreateTaxRate(context.Background(), CreateTaxRateRequest{
		ProvinceID: 99, FuelTypeID: 1,
		CarbonTax: "0", ProvincialRoadTax: "0", FederalExciseTax: "0",
	}, adminID)
	require.ErrorIs(t, err, ErrNotFound)
}

func newOperatorFixture() (OperatorService, *fakeOperators) {
	operators := &fakeOperators{items: []model.Operator{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@example.com"},
	}}
	locations := &fakeLocations{items: map[int64]*model.Location{1: {ID: 1, Name: "Toronto, ON", ProvinceID: 7}}}
	return NewOperatorService(operators, locations, &fakeAudit{}, fakeTx{}), operators
}

func TestOperator_Create(t *testing.T) {
	svc, operators := newOperatorFixture()
	locationID := int64(1)

	res, err := svc.CreateOperator(context.Background(), CreateOperatorRequest{
		FirstName:  " Jane ",
		LastName:   "Roe",
		Email:      "Jane.Roe@Example.com",
		LocationID: &locationID,
		Discount:   "0.05",
	}, adminID)
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", res.FullName)
	assert.Equal(t, "jane.roe@example.com", res.Email)
	assert.Equal(t, "0.0500", res.Discount)
	require.NotNil(t, res.LocationName)
	assert.Equal(t, "Toronto, ON", *res.LocationName)
	assert.Len(t, operators.created, 1)
}

func TestOperator_CreateValidation(t *testing.T) {
	svc, _ := newOperatorFixture()
	missing := int64(42)

	cases := []struct {
		name string
		req  CreateOperatorRequest
		want error
	}{
		{"bad email", CreateOperatorRequest{FirstName: "A", LastName: "B", Email: "not-an-email"}, ErrValidation},
		{"duplicate email", CreateOperatorRequest{FirstName: "A", LastName: "B", Email: "JOHN@example.com"}, ErrConflict},
		{"negative discount", CreateOperatorRequest{FirstName: "A", LastName: "B", Email: "a@b.com", Discount: "-1"}, ErrValidation},
		{"unknown location", CreateOperatorRequest{FirstName: "A", LastName: "B", Email: "a@b.com", LocationID: &missing}, ErrNotFound},
		{"blank name", CreateOperatorRequest{FirstName: " ", LastName: "B", Email: "a@b.com"}, ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOperator(context.Background(), tc.req, adminID)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOperator_UpdateKeepsOwnEmailAndClearsLocation(t *testing.T) {
	svc, operators := newOperatorFixture()
	email := "john@example.com"

	res, err := svc.UpdateOperator(context.Background(), 1, UpdateOperatorRequest{Email: &email, ClearLocation: true}, adminID)
	require.NoError(t, err)
	assert.Nil(t, res.LocationID)
	require.Len(t, operators.updated, 1)
}

func TestAuth_LoginIssuesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"admin@example.com": {ID: id, Email: "admin@example.com", Password: string(hash), Role: model.RoleAdmin},
	}}
	secret := []byte("test-secret")
	svc := NewAuthService(users, secret, 0)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "Admin@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims["sub"])
	assert.Equal(t, model.RoleAdmin, claims["role"])

	_, err = svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_CreateUser(t *testing.T) {
	users := &fakeUsers{}
	svc := NewAuthService(users, []byte("k"), 0)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.com", Password: "longenough", Role: "root"})
	require.ErrorIs(t, err, ErrValidation)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{Name: "Ops", Email: "Ops@B.com", Password: "longenough", Role: model.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "ops@b.com", user.Email)
	assert.NotEqual(t, "longenough", users.byEmail["ops@b.com"].Password)

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{Email: "ops@b.com", Password: "longenough", Role: model.RoleStaff})
	require.ErrorIs(t, err, ErrConflict)
}
