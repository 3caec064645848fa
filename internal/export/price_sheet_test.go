package export_test

import (
	"bytes"
	"testing"

	"fuelprice/internal/export"
	"fuelprice/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSheet() export.PriceSheet {
	return export.PriceSheet{
		Date: "2026-10-19",
		Results: []pricing.OperatorPriceResult{
			{
				OperatorID:    1,
				OperatorName:  "John Doe",
				OperatorEmail: "john@example.com",
				Location:      "Toronto, ON",
				Prices: []pricing.PricedLine{
					{FuelTypeID: 1, FuelTypeName: "REG 87", BasePrice: 1.0, CarbonTax: 0.0884, ProvincialRoadTax: 0.147, FederalExciseTax: 0.1, Discount: 0.1, FinalPrice: 1.2354},
					{FuelTypeID: 3, FuelTypeName: "SUP 91", BasePrice: 1.2, CarbonTax: 0.0884, ProvincialRoadTax: 0.147, FederalExciseTax: 0.1, Discount: 0.1, FinalPrice: 1.4354},
				},
			},
			{OperatorID: 2, OperatorName: "Jane Roe", OperatorEmail: "jane@example.com", Location: "Regina, SK", Prices: []pricing.PricedLine{}},
		},
	}
}

func TestBuildPriceSheetXLSX(t *testing.T) {
	data, err := export.BuildPriceSheetXLSX(sampleSheet())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("prices")
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"Daily Fuel Prices", "2026-10-19"}, rows[0])
	assert.Equal(t, "Final Price", rows[2][9])
	assert.Equal(t, "John Doe", rows[3][0])
	assert.Equal(t, "REG 87", rows[3][3])
	assert.Equal(t, "1.2354", rows[3][9])
	assert.Equal(t, "SUP 91", rows[4][3])
	assert.Equal(t, "1.4354", rows[4][9])
}

func TestBuildPriceSheetPDF(t *testing.T) {
	data, err := export.BuildPriceSheetPDF(sampleSheet())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuild(t *testing.T) {
	file, err := export.Build(sampleSheet(), export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "fuel-prices-2026-10-19.xlsx", file.Name)
	assert.NotEmpty(t, file.Data)

	file, err = export.Build(sampleSheet(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)

	_, err = export.Build(sampleSheet(), "csv")
	assert.Error(t, err)
}
