package services

import (
	"context"
	"fmt"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// CompanyFallbackName is reported for ticket groups whose requester no longer
// resolves to a person. Requester groups are kept under this name, while
// assignee groups with the same gap are dropped entirely; the asymmetry is
// deliberate.
const CompanyFallbackName = "Unknown"

// ReportService computes the reporting views. Every method is a pure read
// over the report repository; no state survives between calls.
type ReportService struct {
	reportRepo ports.ReportRepository
	catalog    *domain.CategoryCatalog
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service. The catalog is expected to
// be built once at startup and shared read-only.
func NewReportService(reportRepo ports.ReportRepository, catalog *domain.CategoryCatalog) ports.ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		catalog:    catalog,
	}
}

// Summary returns the overall, pending (OPEN) and completed (CLOSED) counts.
func (s *ReportService) Summary(ctx context.Context) (domain.TicketSummary, error) {
	return s.reportRepo.StatusTotals(ctx)
}

// ResolutionRate returns the percentage of tickets that are closed. An empty
// store yields 0 rather than a non-finite number.
func (s *ReportService) ResolutionRate(ctx context.Context) (float64, error) {
	summary, err := s.reportRepo.StatusTotals(ctx)
	if err != nil {
		return 0, err
	}
	return summary.ResolutionRate(), nil
}

// MonthlySummary returns creation counts collapsed into UTC calendar months.
// The store reports at day grain, so tickets created on different days of the
// same month merge into one bucket here.
func (s *ReportService) MonthlySummary(ctx context.Context) ([]domain.MonthBucket, error) {
	days, err := s.reportRepo.CreatedByDay(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BucketByMonth(days), nil
}

// ByCategory returns per-category counts decorated with catalog metadata.
// A category present in the data but absent from the catalog is a
// configuration error and fails the whole report.
func (s *ReportService) ByCategory(ctx context.Context) ([]domain.CategoryBreakdown, error) {
	counts, err := s.reportRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := make([]domain.CategoryBreakdown, 0, len(counts))
	for _, count := range counts {
		meta, err := s.catalog.Lookup(count.Category)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", count.Category, err)
		}
		breakdown = append(breakdown, domain.CategoryBreakdown{
			Label: meta.Label,
			Count: count.Count,
			Color: meta.Color,
			Icon:  meta.Icon,
		})
	}
	return breakdown, nil
}

// TechnicianPerformance returns status-scoped counts per assignee.
// Unassigned tickets and groups whose assignee no longer resolves to a person
// never appear; the repository's grouped join already excludes them.
func (s *ReportService) TechnicianPerformance(ctx context.Context) ([]domain.TechnicianPerformance, error) {
	loads, err := s.reportRepo.AssigneeLoads(ctx)
	if err != nil {
		return nil, err
	}

	performance := make([]domain.TechnicianPerformance, 0, len(loads))
	for _, load := range loads {
		person := domain.Person{FirstName: load.FirstName, LastName: load.LastName}
		performance = append(performance, domain.TechnicianPerformance{
			Name:      person.FullName(),
			Total:     load.Total,
			Completed: load.Completed,
			Pending:   load.Pending,
		})
	}
	return performance, nil
}

// CompanySummary returns status-scoped counts per requesting client. Groups
// whose requester no longer resolves to a person are kept under the fallback
// name instead of being dropped.
func (s *ReportService) CompanySummary(ctx context.Context) ([]domain.CompanyPerformance, error) {
	loads, err := s.reportRepo.RequesterLoads(ctx)
	if err != nil {
		return nil, err
	}

	summary := make([]domain.CompanyPerformance, 0, len(loads))
	for _, load := range loads {
		name := CompanyFallbackName
		if load.HasPerson {
			person := domain.Person{FirstName: load.FirstName, LastName: load.LastName}
			name = person.FullName()
		}
		summary = append(summary, domain.CompanyPerformance{
			Name:      name,
			Completed: load.Completed,
			Pending:   load.Pending,
		})
	}
	return summary, nil
}

// recentTicketLimit caps the recent-tickets view.
const recentTicketLimit = 5

// RecentTickets returns the newest tickets by creation time, descending.
func (s *ReportService) RecentTickets(ctx context.Context) ([]*domain.Ticket, error) {
	return s.reportRepo.MostRecent(ctx, recentTicketLimit)
}
