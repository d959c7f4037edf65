package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/mocks"
)

var errStore = errors.New("connection reset")

func newReportService(repo *mocks.MockReportRepository) *ReportService {
	return NewReportService(repo, domain.DefaultCategoryCatalog()).(*ReportService)
}

func TestReportService_Summary(t *testing.T) {
	t.Run("returns the store totals", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("StatusTotals", mock.Anything).
			Return(domain.TicketSummary{Total: 10, Pending: 4, Completed: 5}, nil)

		summary, err := newReportService(repo).Summary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(10), summary.Total)
		assert.Equal(t, int64(4), summary.Pending)
		assert.Equal(t, int64(5), summary.Completed)
		repo.AssertExpectations(t)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("StatusTotals", mock.Anything).
			Return(domain.TicketSummary{}, errStore)

		_, err := newReportService(repo).Summary(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_ResolutionRate(t *testing.T) {
	t.Run("exact percentage", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("StatusTotals", mock.Anything).
			Return(domain.TicketSummary{Total: 8, Pending: 3, Completed: 2}, nil)

		rate, err := newReportService(repo).ResolutionRate(context.Background())

		require.NoError(t, err)
		assert.InDelta(t, 25.0, rate, 1e-9)
	})

	t.Run("empty store yields zero", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("StatusTotals", mock.Anything).
			Return(domain.TicketSummary{}, nil)

		rate, err := newReportService(repo).ResolutionRate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, float64(0), rate)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("StatusTotals", mock.Anything).
			Return(domain.TicketSummary{}, errStore)

		_, err := newReportService(repo).ResolutionRate(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_MonthlySummary(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	t.Run("collapses days into months", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("CreatedByDay", mock.Anything).Return([]domain.DailyCount{
			{Day: day("2024-01-05"), Count: 1},
			{Day: day("2024-01-20"), Count: 1},
			{Day: day("2024-02-01"), Count: 1},
		}, nil)

		buckets, err := newReportService(repo).MonthlySummary(context.Background())

		require.NoError(t, err)
		require.Len(t, buckets, 2)
		assert.Equal(t, "2024-01", buckets[0].Key())
		assert.Equal(t, int64(2), buckets[0].Tickets)
		assert.Equal(t, "2024-02", buckets[1].Key())
		assert.Equal(t, int64(1), buckets[1].Tickets)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("CreatedByDay", mock.Anything).Return(nil, errStore)

		_, err := newReportService(repo).MonthlySummary(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_ByCategory(t *testing.T) {
	t.Run("decorates counts with catalog metadata", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("CountByCategory", mock.Anything).Return([]domain.CategoryCount{
			{Category: domain.CategoryHardware, Count: 7},
			{Category: domain.CategoryNetwork, Count: 2},
		}, nil)

		breakdown, err := newReportService(repo).ByCategory(context.Background())

		require.NoError(t, err)
		require.Len(t, breakdown, 2)
		assert.Equal(t, "Hardware", breakdown[0].Label)
		assert.Equal(t, int64(7), breakdown[0].Count)
		assert.Equal(t, "#f97316", breakdown[0].Color)
		assert.Equal(t, "cpu", breakdown[0].Icon)
		assert.Equal(t, "Red", breakdown[1].Label)
	})

	t.Run("fails when a category has no catalog entry", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("CountByCategory", mock.Anything).Return([]domain.CategoryCount{
			{Category: domain.TicketCategory("LEGACY"), Count: 1},
		}, nil)

		_, err := newReportService(repo).ByCategory(context.Background())
		assert.ErrorIs(t, err, domain.ErrCategoryNotConfigured)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("CountByCategory", mock.Anything).Return(nil, errStore)

		_, err := newReportService(repo).ByCategory(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_TechnicianPerformance(t *testing.T) {
	t.Run("builds display names from the grouped rows", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("AssigneeLoads", mock.Anything).Return([]domain.AssigneeLoad{
			{AssigneeID: uuid.New(), FirstName: "Ana", LastName: "García", Total: 5, Completed: 3, Pending: 1},
			{AssigneeID: uuid.New(), FirstName: "Luis", LastName: "Pérez", Total: 2, Completed: 0, Pending: 2},
		}, nil)

		performance, err := newReportService(repo).TechnicianPerformance(context.Background())

		require.NoError(t, err)
		require.Len(t, performance, 2)
		assert.Equal(t, "Ana García", performance[0].Name)
		assert.Equal(t, int64(5), performance[0].Total)
		assert.Equal(t, int64(3), performance[0].Completed)
		assert.Equal(t, int64(1), performance[0].Pending)
		assert.Equal(t, "Luis Pérez", performance[1].Name)
	})

	t.Run("no assignee rows yields an empty report", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("AssigneeLoads", mock.Anything).Return([]domain.AssigneeLoad{}, nil)

		performance, err := newReportService(repo).TechnicianPerformance(context.Background())

		require.NoError(t, err)
		assert.Empty(t, performance)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("AssigneeLoads", mock.Anything).Return(nil, errStore)

		_, err := newReportService(repo).TechnicianPerformance(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_CompanySummary(t *testing.T) {
	t.Run("substitutes the fallback name for unresolved requesters", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("RequesterLoads", mock.Anything).Return([]domain.RequesterLoad{
			{RequesterID: uuid.New(), FirstName: "Ana", LastName: "García", HasPerson: true, Completed: 3, Pending: 1},
			{RequesterID: uuid.New(), HasPerson: false, Completed: 1, Pending: 2},
		}, nil)

		summary, err := newReportService(repo).CompanySummary(context.Background())

		require.NoError(t, err)
		require.Len(t, summary, 2)
		assert.Equal(t, "Ana García", summary[0].Name)
		assert.Equal(t, CompanyFallbackName, summary[1].Name)
		assert.Equal(t, int64(1), summary[1].Completed)
		assert.Equal(t, int64(2), summary[1].Pending)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("RequesterLoads", mock.Anything).Return(nil, errStore)

		_, err := newReportService(repo).CompanySummary(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}

func TestReportService_RecentTickets(t *testing.T) {
	t.Run("asks the store for the fixed window", func(t *testing.T) {
		tickets := []*domain.Ticket{
			{ID: 3, Title: "Newest"},
			{ID: 2, Title: "Older"},
		}

		repo := mocks.NewMockReportRepository()
		repo.On("MostRecent", mock.Anything, int32(5)).Return(tickets, nil)

		recent, err := newReportService(repo).RecentTickets(context.Background())

		require.NoError(t, err)
		assert.Equal(t, tickets, recent)
		repo.AssertExpectations(t)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		repo := mocks.NewMockReportRepository()
		repo.On("MostRecent", mock.Anything, int32(5)).Return(nil, errStore)

		_, err := newReportService(repo).RecentTickets(context.Background())
		assert.ErrorIs(t, err, errStore)
	})
}
