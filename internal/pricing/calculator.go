// Package pricing turns rack prices, provincial tax rates and operator
// discounts into the final per-litre prices emailed to operators.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrTaxRateNotFound is returned when a rack price has no tax rate for the
// operator's province. The whole batch is rejected when this happens.
var ErrTaxRateNotFound = errors.New("tax rate not found")

// TaxRateNotFoundError identifies the fuel type and province that had no tax rate.
type TaxRateNotFoundError struct {
	FuelTypeName string
	ProvinceID   int64
}

func (e *TaxRateNotFoundError) Error() string {
	return fmt.Sprintf("tax rate not found for fuel type %s in province ID %d", e.FuelTypeName, e.ProvinceID)
}

// Is lets errors.Is match ErrTaxRateNotFound.
func (e *TaxRateNotFoundError) Is(target error) bool {
	return target == ErrTaxRateNotFound
}

type FuelType struct {
	ID   int64
	Name string
}

type Location struct {
	ID         int64
	Name       string
	ProvinceID int64
}

// Operator must carry a resolved Location.
type Operator struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Location  Location
	Discount  float64
}

type RackPrice struct {
	LocationID int64
	FuelType   FuelType
	BasePrice  float64
}

type TaxRate struct {
	ProvinceID        int64
	FuelType          FuelType
	CarbonTax         float64
	ProvincialRoadTax float64
	FederalExciseTax  float64
}

// PricedLine is one fuel type's price for one operator. The JSON shape is
// persisted in email_logs.price_data.
type PricedLine struct {
	FuelTypeID        int64   `json:"fuelTypeId"`
	FuelTypeName      string  `json:"fuelTypeName"`
	FinalPrice        float64 `json:"finalPrice"`
	BasePrice         float64 `json:"basePrice"`
	CarbonTax         float64 `json:"carbonTax"`
	ProvincialRoadTax float64 `json:"provincialRoadTax"`
	FederalExciseTax  float64 `json:"federalExciseTax"`
	Discount          float64 `json:"discount"`
}

type OperatorPriceResult struct {
	OperatorID    int64        `json:"operatorId"`
	OperatorName  string       `json:"operatorName"`
	OperatorEmail string       `json:"operatorEmail"`
	Location      string       `json:"location"`
	Prices        []PricedLine `json:"prices"`
}

type taxKey struct {
	provinceID int64
	fuelTypeID int64
}

// Calculate prices every operator against the rack prices of its location.
// A result is returned for every operator, in input order, even when its
// location has no rack prices. Inputs are not modified.
func Calculate(operators []Operator, rackPrices []RackPrice, taxRates []TaxRate) ([]OperatorPriceResult, error) {
	taxes := make(map[taxKey]TaxRate, len(taxRates))
	for _, tr := range taxRates {
		key := taxKey{provinceID: tr.ProvinceID, fuelTypeID: tr.FuelType.ID}
		// first match wins
		if _, ok := taxes[key]; !ok {
			taxes[key] = tr
		}
	}

	results := make([]OperatorPriceResult, 0, len(operators))
	for _, op := range operators {
		prices := make([]PricedLine, 0)
		for _, rp := range rackPrices {
			if rp.LocationID != op.Location.ID {
				continue
			}

			tr, ok := taxes[taxKey{provinceID: op.Location.ProvinceID, fuelTypeID: rp.FuelType.ID}]
			if !ok {
				return nil, &TaxRateNotFoundError{FuelTypeName: rp.FuelType.Name, ProvinceID: op.Location.ProvinceID}
			}

			prices = append(prices, PricedLine{
				FuelTypeID:        rp.FuelType.ID,
				FuelTypeName:      rp.FuelType.Name,
				FinalPrice:        Round4(rp.BasePrice + tr.CarbonTax + tr.ProvincialRoadTax + tr.FederalExciseTax - op.Discount),
				BasePrice:         rp.BasePrice,
				CarbonTax:         tr.CarbonTax,
				ProvincialRoadTax: tr.ProvincialRoadTax,
				FederalExciseTax:  tr.FederalExciseTax,
				Discount:          op.Discount,
			})
		}

		results = append(results, OperatorPriceResult{
			OperatorID:    op.ID,
			OperatorName:  op.FirstName + " " + op.LastName,
			OperatorEmail: op.Email,
			Location:      op.Location.Name,
			Prices:        prices,
		})
	}

	return results, nil
}

// Round4 rounds to four decimal places by scaling, rounding half away from
// zero and scaling back. Binary representation error is not corrected for.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
