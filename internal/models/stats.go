package models

import "time"

const ChartDaySpan = 7

// RevenuePoint is one calendar day of the revenue chart. Date is a
// server-local YYYY-MM-DD key.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// StatsSnapshot is derived state, recomputed on demand and never persisted.
// FailedTransactions is an all-time counter while the sibling metrics are
// windowed; the asymmetry is intentional and must be preserved.
type StatsSnapshot struct {
	TotalPaymentsToday int64          `json:"totalPaymentsToday"`
	TotalPaymentsWeek  int64          `json:"totalPaymentsWeek"`
	TotalRevenueToday  float64        `json:"totalRevenueToday"`
	TotalRevenueWeek   float64        `json:"totalRevenueWeek"`
	FailedTransactions int64          `json:"failedTransactions"`
	RevenueChart       []RevenuePoint `json:"revenueChart"`
}

// ChartDays returns the 7 consecutive day keys ending at now's calendar day,
// oldest first, in now's location.
func ChartDays(now time.Time) []string {
	days := make([]string, 0, ChartDaySpan)
	for i := ChartDaySpan - 1; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return days
}

// ZeroSnapshot is the degraded snapshot served when the store is unreachable.
func ZeroSnapshot(now time.Time) *StatsSnapshot {
	chart := make([]RevenuePoint, 0, ChartDaySpan)
	for _, day := range ChartDays(now) {
		chart = append(chart, RevenuePoint{Date: day})
	}
	return &StatsSnapshot{RevenueChart: chart}
}
