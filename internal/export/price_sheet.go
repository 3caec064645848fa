// Package export renders the day's calculated prices as XLSX or PDF sheets.
package export

import (
	"bytes"
	"fmt"

	"fuelprice/internal/pricing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	pricesSheet = "prices"
)

var columns = []string{
	"Operator", "Email", "Location", "Fuel Type", "Base Price",
	"Carbon Tax", "Provincial Road Tax", "Federal Excise Tax", "Discount", "Final Price",
}

// PriceSheet is the calculator output for one day.
type PriceSheet struct {
	Date    string
	Results []pricing.OperatorPriceResult
}

// File is a rendered export ready to be served.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Build renders sheet in the given format.
func Build(sheet PriceSheet, format string) (*File, error) {
	switch format {
	case FormatXLSX:
		data, err := BuildPriceSheetXLSX(sheet)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        fmt.Sprintf("fuel-prices-%s.xlsx", sheet.Date),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := BuildPriceSheetPDF(sheet)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        fmt.Sprintf("fuel-prices-%s.pdf", sheet.Date),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// BuildPriceSheetXLSX writes one row per operator and fuel type.
func BuildPriceSheetXLSX(sheet PriceSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pricesSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(pricesSheet, "A1", "Daily Fuel Prices")
	_ = f.SetCellValue(pricesSheet, "B1", sheet.Date)

	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(pricesSheet, cell, name)
	}

	row := 4
	for _, res := range sheet.Results {
		for _, line := range res.Prices {
			values := []interface{}{
				res.OperatorName, res.OperatorEmail, res.Location, line.FuelTypeName, line.BasePrice,
				line.CarbonTax, line.ProvincialRoadTax, line.FederalExciseTax, line.Discount, line.FinalPrice,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(pricesSheet, cell, v)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPriceSheetPDF renders a landscape table of final prices per operator.
func BuildPriceSheetPDF(sheet PriceSheet) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Daily Fuel Prices")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", sheet.Date))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Operators: %d", len(sheet.Results)))
	pdf.Ln(10)

	widths := []float64{45, 60, 45, 30, 25, 25, 25}
	header := []string{"Operator", "Email", "Location", "Fuel Type", "Base", "Discount", "Final Price"}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, res := range sheet.Results {
		for _, line := range res.Prices {
			pdf.CellFormat(widths[0], 6, res.OperatorName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, res.OperatorEmail, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 6, res.Location, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 6, line.FuelTypeName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[4], 6, fixed4(line.BasePrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[5], 6, fixed4(line.Discount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[6], 6, fixed4(line.FinalPrice), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fixed4(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}
