package service

import (
	"context"
	"time"

	"fuelprice/internal/repository"
)

const recentErrorLimit = 5

// DashboardSnapshot is what the admin home page shows.
type DashboardSnapshot struct {
	Date             string             `json:"date"`
	OperatorCount    int64              `json:"operator_count"`
	TodayRackPrices  int64              `json:"today_rack_prices"`
	EmailsLast24h    int64              `json:"emails_last_24h"`
	RecentFailedLogs []EmailLogResponse `json:"recent_failed_logs"`
}

type DashboardService interface {
	Snapshot(ctx context.Context) (DashboardSnapshot, error)
}

type dashboardService struct {
	operators  repository.OperatorRepository
	rackPrices repository.RackPriceRepository
	emailLogs  repository.EmailLogRepository
	clock      Clock
}

func NewDashboardService(
	operators repository.OperatorRepository,
	rackPrices repository.RackPriceRepository,
	emailLogs repository.EmailLogRepository,
	clock Clock,
) DashboardService {
	if clock == nil {
		clock = systemClock{}
	}
	return &dashboardService{operators: operators, rackPrices: rackPrices, emailLogs: emailLogs, clock: clock}
}

func (s *dashboardService) Snapshot(ctx context.Context) (DashboardSnapshot, error) {
	today := Today(s.clock)
	snap := DashboardSnapshot{Date: today.Format(time.DateOnly)}

	var err error
	if snap.OperatorCount, err = s.operators.Count(ctx); err != nil {
		return DashboardSnapshot{}, storeError(err, "operators")
	}
	if snap.TodayRackPrices, err = s.rackPrices.CountByDate(ctx, today); err != nil {
		return DashboardSnapshot{}, storeError(err, "rack prices")
	}
	if snap.EmailsLast24h, err = s.emailLogs.CountSince(ctx, s.clock.Now().Add(-24*time.Hour)); err != nil {
		return DashboardSnapshot{}, storeError(err, "email logs")
	}

	failed, err := s.emailLogs.ListRecentErrors(ctx, recentErrorLimit)
	if err != nil {
		return DashboardSnapshot{}, storeError(err, "email logs")
	}
	snap.RecentFailedLogs = make([]EmailLogResponse, 0, len(failed))
	for _, l := range failed {
		snap.RecentFailedLogs = append(snap.RecentFailedLogs, toEmailLogResponse(l))
	}
	return snap, nil
}
