package service

import "time"

const (
	EventRackPricesIngested = "rack_prices.ingested"
	EventDailyPricesSent    = "daily_prices.sent"
	EventEmailFailed        = "email.failed"
)

// EventPublisher pushes job events to connected dashboards.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

// Clock returns the current time. Jobs derive "today" from it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Today is the current UTC calendar day at midnight.
func Today(c Clock) time.Time {
	now := c.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
