package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownReport is returned when a report selector does not match any of
// the supported report kinds.
var ErrUnknownReport = errors.New("unknown report")

// ReportKind enumerates the supported reporting views. Dispatching on a
// closed enum instead of raw selector strings makes adding or removing a
// report a compile-time-checked change.
type ReportKind int

const (
	ReportSummary ReportKind = iota
	ReportResolutionRate
	ReportMonthlySummary
	ReportByCategory
	ReportTechnicianPerformance
	ReportCompanySummary
	ReportRecentTickets
)

var reportSelectors = map[string]ReportKind{
	"summary":                ReportSummary,
	"resolution-rate":        ReportResolutionRate,
	"monthly-summary":        ReportMonthlySummary,
	"by-category":            ReportByCategory,
	"technician-performance": ReportTechnicianPerformance,
	"company-summary":        ReportCompanySummary,
	"recent-tickets":         ReportRecentTickets,
}

// ParseReportKind maps a route selector to a report kind.
func ParseReportKind(selector string) (ReportKind, error) {
	kind, ok := reportSelectors[selector]
	if !ok {
		return 0, ErrUnknownReport
	}
	return kind, nil
}

func (k ReportKind) String() string {
	for selector, kind := range reportSelectors {
		if kind == k {
			return selector
		}
	}
	return "unknown"
}

// TicketSummary holds the overall ticket counters. Pending counts OPEN
// tickets and Completed counts CLOSED tickets; IN_PROGRESS tickets contribute
// to the total only.
type TicketSummary struct {
	Total     int64
	Pending   int64
	Completed int64
}

// ResolutionRate returns the percentage of tickets that are closed. With no
// tickets at all the rate is defined as 0 rather than NaN.
func (s TicketSummary) ResolutionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// DailyCount is a creation count at the store's native day grain.
type DailyCount struct {
	Day   time.Time
	Count int64
}

// MonthBucket is a creation count collapsed to a UTC calendar month.
type MonthBucket struct {
	Month   time.Time
	Tickets int64
}

// Key returns the bucket's calendar-month key, e.g. "2024-01".
func (b MonthBucket) Key() string {
	return b.Month.Format("2006-01")
}

// BucketByMonth collapses per-day creation counts into UTC calendar-month
// buckets. Months with no tickets produce no bucket. The result is sorted by
// month ascending so output is deterministic.
func BucketByMonth(days []DailyCount) []MonthBucket {
	totals := make(map[time.Time]int64)
	for _, day := range days {
		utc := day.Day.UTC()
		month := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += day.Count
	}

	buckets := make([]MonthBucket, 0, len(totals))
	for month, count := range totals {
		buckets = append(buckets, MonthBucket{Month: month, Tickets: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month.Before(buckets[j].Month)
	})
	return buckets
}

// CategoryCount is a raw per-category ticket count from the store.
type CategoryCount struct {
	Category TicketCategory
	Count    int64
}

// CategoryBreakdown is a per-category count decorated with catalog metadata.
type CategoryBreakdown struct {
	Label string
	Count int64
	Color string
	Icon  string
}

// AssigneeLoad is a grouped row of status-scoped counts for one assignee.
// Rows only exist for tickets that have an assignee resolving to a person.
type AssigneeLoad struct {
	AssigneeID uuid.UUID
	FirstName  string
	LastName   string
	Total      int64
	Completed  int64
	Pending    int64
}

// TechnicianPerformance is the reported view of an assignee's workload.
type TechnicianPerformance struct {
	Name      string
	Total     int64
	Completed int64
	Pending   int64
}

// RequesterLoad is a grouped row of status-scoped counts for one requester.
// HasPerson is false when the requester no longer resolves to a person; the
// group is kept and reported under a fallback name.
type RequesterLoad struct {
	RequesterID uuid.UUID
	FirstName   string
	LastName    string
	HasPerson   bool
	Completed   int64
	Pending     int64
}

// CompanyPerformance is the reported view of a requesting client's tickets.
type CompanyPerformance struct {
	Name      string
	Completed int64
	Pending   int64
}
