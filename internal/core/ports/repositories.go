package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
)

// PersonRepository is the port for person persistence.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) (*domain.Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
}

// ListTicketsRepoParams holds the repository-level filters for listing
// tickets. Nil filters mean "no filter".
type ListTicketsRepoParams struct {
	Limit       int32
	Offset      int32
	Status      *string
	Priority    *string
	RequesterID *uuid.UUID
}

// TicketRepository is the port for ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	ListPaginated(ctx context.Context, params ListTicketsRepoParams) ([]*domain.Ticket, error)
}

// ReportRepository is the port for the read-only aggregate queries backing
// the reporting views. Every method observes a snapshot; none mutate state.
type ReportRepository interface {
	// StatusTotals returns the overall, OPEN-scoped and CLOSED-scoped counts.
	StatusTotals(ctx context.Context) (domain.TicketSummary, error)

	// CreatedByDay returns creation counts at the store's day grain; the
	// service collapses them into calendar months.
	CreatedByDay(ctx context.Context) ([]domain.DailyCount, error)

	// CountByCategory returns one row per category that has tickets.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)

	// AssigneeLoads returns status-scoped counts grouped by assignee. Tickets
	// without an assignee, or whose assignee no longer resolves to a person,
	// produce no row.
	AssigneeLoads(ctx context.Context) ([]domain.AssigneeLoad, error)

	// RequesterLoads returns status-scoped counts grouped by requester,
	// keeping groups whose requester no longer resolves to a person.
	RequesterLoads(ctx context.Context) ([]domain.RequesterLoad, error)

	// MostRecent returns the newest tickets by creation time, descending.
	MostRecent(ctx context.Context, limit int32) ([]*domain.Ticket, error)
}
