package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params domain.PersonRegistrationParams) (*domain.Person, error)
	Login(ctx context.Context, email, password string) (*domain.Person, error)
}

// ReportService defines the port for the reporting views. Each method is an
// independent, read-only aggregation; a failure in one never affects another.
type ReportService interface {
	Summary(ctx context.Context) (domain.TicketSummary, error)
	ResolutionRate(ctx context.Context) (float64, error)
	MonthlySummary(ctx context.Context) ([]domain.MonthBucket, error)
	ByCategory(ctx context.Context) ([]domain.CategoryBreakdown, error)
	TechnicianPerformance(ctx context.Context) ([]domain.TechnicianPerformance, error)
	CompanySummary(ctx context.Context) ([]domain.CompanyPerformance, error)
	RecentTickets(ctx context.Context) ([]*domain.Ticket, error)
}

// CreateTicketParams defines the required input for creating a new ticket.
type CreateTicketParams struct {
	Title       string
	Description string
	Type        domain.TicketCategory
	Priority    domain.TicketPriority
	RequesterID uuid.UUID
}

// UpdateStatusParams defines the input for changing a ticket's status.
type UpdateStatusParams struct {
	TicketID int64
	Status   domain.TicketStatus
	ActorID  uuid.UUID
}

// AssignTicketParams defines the input for assigning a ticket.
type AssignTicketParams struct {
	TicketID   int64
	AssigneeID uuid.UUID
	ActorID    uuid.UUID
}

// ListTicketsParams defines the input for listing tickets.
type ListTicketsParams struct {
	ViewerID uuid.UUID
	Limit    int
	Offset   int
	Status   *string
	Priority *string
	All      bool // when false the listing is scoped to the viewer's tickets
}

// TicketService defines the core business operations for managing tickets.
type TicketService interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID int64, viewerID uuid.UUID) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, params AssignTicketParams) (*domain.Ticket, error)
	ListTickets(ctx context.Context, params ListTicketsParams) ([]*domain.Ticket, error)
}

// EventBroadcaster defines the port for publishing real-time ticket events.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
