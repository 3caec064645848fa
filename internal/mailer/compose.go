package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"fuelprice/internal/pricing"

	"github.com/shopspring/decimal"
)

const (
	subjectDateLayout = "1/2/2006"
	bodyDateLayout    = "Monday, January 2, 2006"
)

var priceEmailTemplate = template.Must(template.New("price_email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Daily Fuel Prices</h2>
  <p>Hello {{.OperatorName}},</p>
  <p>Here are your fuel prices for {{.Date}} at {{.Location}}:</p>
  <table style="width: 100%; border-collapse: collapse; margin-top: 20px;">
    <thead>
      <tr>
        <th style="padding: 8px; text-align: left; border: 1px solid #ddd; background-color: #f2f2f2;">Fuel Type</th>
        <th style="padding: 8px; text-align: right; border: 1px solid #ddd; background-color: #f2f2f2;">Price</th>
      </tr>
    </thead>
    <tbody>
{{- range .Lines}}
      <tr>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.Name}}</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">{{.Price}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
  <p style="margin-top: 20px;">These prices have been calculated based on today's rack prices with your specific discount applied.</p>
  <p>Thank you,<br>Fuel Price Automation System</p>
</div>
`))

type emailLine struct {
	Name  string
	Price string
}

type emailView struct {
	OperatorName string
	Location     string
	Date         string
	Lines        []emailLine
}

// Subject returns the subject line of the price email sent on day.
func Subject(day time.Time) string {
	return "Daily Fuel Prices - " + day.Format(subjectDateLayout)
}

// FormatPrice renders a final price with exactly four decimals.
func FormatPrice(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(4)
}

// Compose builds the price email for one operator.
func Compose(result pricing.OperatorPriceResult, from string, day time.Time) (Message, error) {
	view := emailView{
		OperatorName: result.OperatorName,
		Location:     result.Location,
		Date:         day.Format(bodyDateLayout),
		Lines:        make([]emailLine, 0, len(result.Prices)),
	}
	for _, p := range result.Prices {
		view.Lines = append(view.Lines, emailLine{Name: p.FuelTypeName, Price: FormatPrice(p.FinalPrice)})
	}

	var buf bytes.Buffer
	if err := priceEmailTemplate.Execute(&buf, view); err != nil {
		return Message{}, fmt.Errorf("render price email: %w", err)
	}

	return Message{
		From:    from,
		To:      result.OperatorEmail,
		Subject: Subject(day),
		HTML:    buf.String(),
	}, nil
}
