package pricing_test

import (
	"errors"
	"testing"

	"fuelprice/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reg87 = pricing.FuelType{ID: 1, Name: "REG 87"}
	sup91 = pricing.FuelType{ID: 3, Name: "SUP 91"}

	toronto = pricing.Location{ID: 1, Name: "Toronto, ON", ProvinceID: 7}
)

func johnDoe() pricing.Operator {
	return pricing.Operator{
		ID:        1,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Location:  toronto,
		Discount:  0.1,
	}
}

func ontarioRates() []pricing.TaxRate {
	return []pricing.TaxRate{
		{ProvinceID: 7, FuelType: reg87, CarbonTax: 0.0884, ProvincialRoadTax: 0.147, FederalExciseTax: 0.1},
		{ProvinceID: 7, FuelType: sup91, CarbonTax: 0.0884, ProvincialRoadTax: 0.147, FederalExciseTax: 0.1},
	}
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 1.1235, pricing.Round4(1.12345))
	assert.Equal(t, 1.1234, pricing.Round4(1.12344))
	assert.Equal(t, 0.1235, pricing.Round4(0.12345))
	assert.Equal(t, 100.0001, pricing.Round4(100.00005))
}

func TestRound4_Idempotent(t *testing.T) {
	values := []float64{0, 1.12345, 1.12344, 0.12345, 100.00005, 1.2354000000000003, 2.99995, 0.00004, 123.456789, -0.5}
	for _, v := range values {
		once := pricing.Round4(v)
		assert.Equal(t, once, pricing.Round4(once), "value %v", v)
	}
}

func TestCalculate_ReferenceFixture(t *testing.T) {
	rackPrices := []pricing.RackPrice{
		{LocationID: 1, FuelType: reg87, BasePrice: 1.0},
		{LocationID: 1, FuelType: sup91, BasePrice: 1.2},
	}

	results, err := pricing.Calculate([]pricing.Operator{johnDoe()}, rackPrices, ontarioRates())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, int64(1), res.OperatorID)
	assert.Equal(t, "John Doe", res.OperatorName)
	assert.Equal(t, "john@example.com", res.OperatorEmail)
	assert.Equal(t, "Toronto, ON", res.Location)
	require.Len(t, res.Prices, 2)

	regular := res.Prices[0]
	assert.Equal(t, "REG 87", regular.FuelTypeName)
	assert.Equal(t, int64(1), regular.FuelTypeID)
	assert.Equal(t, 1.0, regular.BasePrice)
	assert.Equal(t, 0.0884, regular.CarbonTax)
	assert.Equal(t, 0.147, regular.ProvincialRoadTax)
	assert.Equal(t, 0.1, regular.FederalExciseTax)
	assert.Equal(t, 0.1, regular.Discount)
	assert.Equal(t, 1.2354, regular.FinalPrice)

	super := res.Prices[1]
	assert.Equal(t, "SUP 91", super.FuelTypeName)
	assert.Equal(t, 1.2, super.BasePrice)
	assert.Equal(t, 1.4354, super.FinalPrice)
}

func TestCalculate_FinalPriceFormula(t *testing.T) {
	op := johnDoe()
	op.Discount = 0.0375
	rates := []pricing.TaxRate{
		{ProvinceID: 7, FuelType: reg87, CarbonTax: 0.1761, ProvincialRoadTax: 0.09, FederalExciseTax: 0.1},
	}
	rackPrices := []pricing.RackPrice{{LocationID: 1, FuelType: reg87, BasePrice: 1.43219}}

	results, err := pricing.Calculate([]pricing.Operator{op}, rackPrices, rates)
	require.NoError(t, err)
	require.Len(t, results[0].Prices, 1)

	want := pricing.Round4(1.43219 + 0.1761 + 0.09 + 0.1 - 0.0375)
	assert.Equal(t, want, results[0].Prices[0].FinalPrice)
}

func TestCalculate_PreservesRackPriceOrderPerLocation(t *testing.T) {
	elsewhere := pricing.Location{ID: 2, Name: "Ottawa, ON", ProvinceID: 7}
	rackPrices := []pricing.RackPrice{
		{LocationID: 1, FuelType: sup91, BasePrice: 1.2},
		{LocationID: 2, FuelType: reg87, BasePrice: 0.9},
		{LocationID: 1, FuelType: reg87, BasePrice: 1.0},
	}
	other := johnDoe()
	other.ID = 2
	other.Location = elsewhere

	results, err := pricing.Calculate([]pricing.Operator{johnDoe(), other}, rackPrices, ontarioRates())
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Len(t, results[0].Prices, 2)
	assert.Equal(t, "SUP 91", results[0].Prices[0].FuelTypeName)
	assert.Equal(t, "REG 87", results[0].Prices[1].FuelTypeName)

	require.Len(t, results[1].Prices, 1)
	assert.Equal(t, "Ottawa, ON", results[1].Location)
	assert.Equal(t, 0.9, results[1].Prices[0].BasePrice)
}

func TestCalculate_OperatorWithoutRackPricesGetsEmptyResult(t *testing.T) {
	op := johnDoe()
	op.Location = pricing.Location{ID: 42, Name: "Regina, SK", ProvinceID: 11}

	results, err := pricing.Calculate([]pricing.Operator{op}, []pricing.RackPrice{
		{LocationID: 1, FuelType: reg87, BasePrice: 1.0},
	}, ontarioRates())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotNil(t, results[0].Prices)
	assert.Empty(t, results[0].Prices)
	assert.Equal(t, "Regina, SK", results[0].Location)
}

func TestCalculate_MissingTaxRateAbortsBatch(t *testing.T) {
	rates := ontarioRates()
	rates[0].ProvinceID = 8

	// second operator would succeed on its own
	other := johnDoe()
	other.ID = 2
	other.Location = pricing.Location{ID: 2, Name: "Ottawa, ON", ProvinceID: 7}
	rackPrices := []pricing.RackPrice{
		{LocationID: 1, FuelType: reg87, BasePrice: 1.0},
		{LocationID: 2, FuelType: sup91, BasePrice: 1.2},
	}

	results, err := pricing.Calculate([]pricing.Operator{johnDoe(), other}, rackPrices, rates)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, pricing.ErrTaxRateNotFound))
	assert.Equal(t, "tax rate not found for fuel type REG 87 in province ID 7", err.Error())

	var notFound *pricing.TaxRateNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "REG 87", notFound.FuelTypeName)
	assert.Equal(t, int64(7), notFound.ProvinceID)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	operators := []pricing.Operator{johnDoe()}
	rackPrices := []pricing.RackPrice{
		{LocationID: 1, FuelType: reg87, BasePrice: 1.0},
		{LocationID: 1, FuelType: sup91, BasePrice: 1.2},
	}
	rates := ontarioRates()

	opsBefore := append([]pricing.Operator(nil), operators...)
	rackBefore := append([]pricing.RackPrice(nil), rackPrices...)
	ratesBefore := append([]pricing.TaxRate(nil), rates...)

	first, err := pricing.Calculate(operators, rackPrices, rates)
	require.NoError(t, err)
	second, err := pricing.Calculate(operators, rackPrices, rates)
	require.NoError(t, err)

	assert.Equal(t, opsBefore, operators)
	assert.Equal(t, rackBefore, rackPrices)
	assert.Equal(t, ratesBefore, rates)
	assert.Equal(t, first, second)
}

func TestCalculate_NoOperators(t *testing.T) {
	results, err := pricing.Calculate(nil, []pricing.RackPrice{{LocationID: 1, FuelType: reg87, BasePrice: 1}}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
