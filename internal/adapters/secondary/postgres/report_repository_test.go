package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
)

func TestReportRepository_StatusTotals(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	t.Run("empty store", func(t *testing.T) {
		summary, err := reportRepo.StatusTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketSummary{}, summary)
	})

	requester := createTestPerson(t, ctx, personRepo)

	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "A", Status: domain.StatusOpen, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "B", Status: domain.StatusOpen, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "C", Status: domain.StatusInProgress, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "D", Status: domain.StatusClosed, RequesterID: requester.ID})

	summary, err := reportRepo.StatusTotals(ctx)
	require.NoError(t, err)

	// IN_PROGRESS contributes to the total but to neither scoped count.
	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(2), summary.Pending)
	assert.Equal(t, int64(1), summary.Completed)
}

func TestReportRepository_CreatedByDay(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	requester := createTestPerson(t, ctx, personRepo)

	day1 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 20, 17, 30, 0, 0, time.UTC)

	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "A", RequesterID: requester.ID, CreatedAt: day1})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "B", RequesterID: requester.ID, CreatedAt: day1.Add(2 * time.Hour)})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "C", RequesterID: requester.ID, CreatedAt: day2})

	counts, err := reportRepo.CreatedByDay(ctx)
	require.NoError(t, err)

	require.Len(t, counts, 2)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, int64(1), counts[1].Count)
	assert.True(t, counts[0].Day.Before(counts[1].Day))

	// Feeding the day grain through the month bucketing collapses both days.
	buckets := domain.BucketByMonth(counts)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-01", buckets[0].Key())
	assert.Equal(t, int64(3), buckets[0].Tickets)
}

func TestReportRepository_CountByCategory(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	requester := createTestPerson(t, ctx, personRepo)

	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "A", Type: domain.CategoryHardware, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "B", Type: domain.CategoryHardware, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "C", Type: domain.CategoryNetwork, RequesterID: requester.ID})

	counts, err := reportRepo.CountByCategory(ctx)
	require.NoError(t, err)

	// One row per category with tickets, largest first. Categories without
	// tickets produce no row.
	require.Len(t, counts, 2)
	assert.Equal(t, domain.CategoryHardware, counts[0].Category)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, domain.CategoryNetwork, counts[1].Category)
	assert.Equal(t, int64(1), counts[1].Count)
}

func TestReportRepository_AssigneeLoads(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	requester := createTestPerson(t, ctx, personRepo)
	technician := createTestPerson(t, ctx, personRepo)
	ghostID := uuid.New() // never inserted into people

	assign := func(title string, status domain.TicketStatus, assigneeID uuid.UUID) {
		ticket := createTestTicket(t, ctx, ticketRepo, &domain.Ticket{
			Title:       title,
			Status:      domain.StatusOpen,
			RequesterID: requester.ID,
		})
		ticket.AssigneeID = &assigneeID
		ticket.Status = status
		now := time.Now().UTC()
		ticket.UpdatedAt = &now
		_, err := ticketRepo.Update(ctx, ticket)
		require.NoError(t, err)
	}

	assign("A", domain.StatusClosed, technician.ID)
	assign("B", domain.StatusOpen, technician.ID)
	assign("C", domain.StatusInProgress, technician.ID)

	// Assigned to an ID with no matching person; the group must not appear.
	assign("D", domain.StatusOpen, ghostID)

	// Unassigned; must not appear either.
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "E", RequesterID: requester.ID})

	loads, err := reportRepo.AssigneeLoads(ctx)
	require.NoError(t, err)

	require.Len(t, loads, 1)
	assert.Equal(t, technician.ID, loads[0].AssigneeID)
	assert.Equal(t, technician.FirstName, loads[0].FirstName)
	assert.Equal(t, int64(3), loads[0].Total)
	assert.Equal(t, int64(1), loads[0].Completed)
	assert.Equal(t, int64(1), loads[0].Pending)
}

func TestReportRepository_RequesterLoads(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	requester := createTestPerson(t, ctx, personRepo)
	ghostID := uuid.New() // never inserted into people

	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "A", Status: domain.StatusClosed, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "B", Status: domain.StatusOpen, RequesterID: requester.ID})
	createTestTicket(t, ctx, ticketRepo, &domain.Ticket{Title: "C", Status: domain.StatusOpen, RequesterID: ghostID})

	loads, err := reportRepo.RequesterLoads(ctx)
	require.NoError(t, err)

	// Unlike assignee groups, a requester group whose person is gone is kept.
	require.Len(t, loads, 2)

	byID := make(map[uuid.UUID]domain.RequesterLoad, len(loads))
	for _, load := range loads {
		byID[load.RequesterID] = load
	}

	known := byID[requester.ID]
	assert.True(t, known.HasPerson)
	assert.Equal(t, requester.FirstName, known.FirstName)
	assert.Equal(t, int64(1), known.Completed)
	assert.Equal(t, int64(1), known.Pending)

	ghost := byID[ghostID]
	assert.False(t, ghost.HasPerson)
	assert.Empty(t, ghost.FirstName)
	assert.Equal(t, int64(0), ghost.Completed)
	assert.Equal(t, int64(1), ghost.Pending)
}

func TestReportRepository_MostRecent(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	reportRepo := NewReportRepository(testPool)
	ticketRepo := NewTicketRepository(testPool)
	personRepo := NewPersonRepository(testPool)

	requester := createTestPerson(t, ctx, personRepo)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		createTestTicket(t, ctx, ticketRepo, &domain.Ticket{
			Title:       "Ticket " + string(rune('A'+i)),
			RequesterID: requester.ID,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	tickets, err := reportRepo.MostRecent(ctx, 5)
	require.NoError(t, err)

	require.Len(t, tickets, 5)
	assert.Equal(t, "Ticket G", tickets[0].Title)
	assert.Equal(t, "Ticket C", tickets[4].Title)
	for i := 1; i < len(tickets); i++ {
		assert.False(t, tickets[i].CreatedAt.After(tickets[i-1].CreatedAt))
	}
}
