package mailer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fuelprice/internal/mailer"
	"fuelprice/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() pricing.OperatorPriceResult {
	return pricing.OperatorPriceResult{
		OperatorID:    1,
		OperatorName:  "John Doe",
		OperatorEmail: "john@example.com",
		Location:      "Toronto, ON",
		Prices: []pricing.PricedLine{
			{FuelTypeID: 1, FuelTypeName: "REG 87", FinalPrice: 1.2354},
			{FuelTypeID: 3, FuelTypeName: "SUP 91", FinalPrice: 1.4},
		},
	}
}

func TestSubject(t *testing.T) {
	day := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Daily Fuel Prices - 3/5/2026", mailer.Subject(day))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1.2354", mailer.FormatPrice(1.2354))
	assert.Equal(t, "1.4000", mailer.FormatPrice(1.4))
	assert.Equal(t, "0.0000", mailer.FormatPrice(0))
}

func TestCompose(t *testing.T) {
	day := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

	msg, err := mailer.Compose(sampleResult(), "prices@example.com", day)
	require.NoError(t, err)

	assert.Equal(t, "prices@example.com", msg.From)
	assert.Equal(t, "john@example.com", msg.To)
	assert.Equal(t, "Daily Fuel Prices - 10/19/2026", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello John Doe,")
	assert.Contains(t, msg.HTML, "Monday, October 19, 2026 at Toronto, ON")
	assert.Contains(t, msg.HTML, ">REG 87</td>")
	assert.Contains(t, msg.HTML, ">1.2354</td>")
	assert.Contains(t, msg.HTML, ">1.4000</td>")
	assert.Less(t, strings.Index(msg.HTML, "REG 87"), strings.Index(msg.HTML, "SUP 91"))
}

func TestCompose_EscapesNames(t *testing.T) {
	res := sampleResult()
	res.OperatorName = "<b>Mallory</b>"

	msg, err := mailer.Compose(res, "prices@example.com", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<b>Mallory</b>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;Mallory&lt;/b&gt;")
}

func TestCompose_NoPrices(t *testing.T) {
	res := sampleResult()
	res.Prices = []pricing.PricedLine{}

	msg, err := mailer.Compose(res, "prices@example.com", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<td")
}

func TestNewSender_WithoutHost(t *testing.T) {
	s := mailer.NewSender(mailer.SMTPConfig{})
	err := s.Send(context.Background(), mailer.Message{To: "john@example.com"})
	assert.True(t, errors.Is(err, mailer.ErrNotConfigured))
}

func TestSMTPSender_RejectsBadRecipient(t *testing.T) {
	s := mailer.NewSender(mailer.SMTPConfig{Host: "localhost", Port: 2525})
	err := s.Send(context.Background(), mailer.Message{From: "prices@example.com", To: "not an address"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}
