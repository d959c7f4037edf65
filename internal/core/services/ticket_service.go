package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// TicketService implements business logic for ticket management
type TicketService struct {
	ticketRepo  ports.TicketRepository
	personRepo  ports.PersonRepository
	broadcaster ports.EventBroadcaster
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo ports.TicketRepository,
	personRepo ports.PersonRepository,
	broadcaster ports.EventBroadcaster,
) ports.TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		personRepo:  personRepo,
		broadcaster: broadcaster,
	}
}

// CreateTicket handles the use case for submitting a new ticket
func (s *TicketService) CreateTicket(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, error) {
	// 1. Create domain entity with validation
	ticketParams := domain.TicketParams{
		Title:       params.Title,
		Description: params.Description,
		Type:        params.Type,
		Priority:    params.Priority,
		RequesterID: params.RequesterID,
	}

	ticket, err := domain.NewTicket(ticketParams)
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// 2. Persist the ticket
	created, err := s.ticketRepo.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	// 3. Broadcast real-time event (async)
	go s.broadcastEvent(domain.EventTicketCreated, created)

	return created, nil
}

// GetTicket retrieves a specific ticket with an ownership check
func (s *TicketService) GetTicket(ctx context.Context, ticketID int64, viewerID uuid.UUID) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !ticket.IsOwnedBy(viewerID) && !ticket.IsAssignedTo(viewerID) {
		return nil, apperrors.ErrForbidden
	}

	return ticket, nil
}

// UpdateStatus changes a ticket's status with business rule enforcement
func (s *TicketService) UpdateStatus(ctx context.Context, params ports.UpdateStatusParams) (*domain.Ticket, error) {
	// 1. Fetch the domain entity
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	// 2. Apply status change (domain validates the transition)
	if err := ticket.UpdateStatus(params.Status); err != nil {
		return nil, err
	}

	// 3. Persist changes
	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	// 4. Broadcast real-time event (async)
	go s.broadcastEvent(domain.EventStatusUpdated, updated)

	return updated, nil
}

// AssignTicket assigns a ticket to a technician
func (s *TicketService) AssignTicket(ctx context.Context, params ports.AssignTicketParams) (*domain.Ticket, error) {
	// 1. The assignee must resolve to an existing person
	if _, err := s.personRepo.GetByID(ctx, params.AssigneeID); err != nil {
		if errors.Is(err, apperrors.ErrPersonNotFound) {
			return nil, apperrors.NewBadRequestError(err, "Assignee does not exist")
		}
		return nil, err
	}

	// 2. Fetch and update domain entity
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	// 3. Apply assignment (domain validates business rules)
	if err := ticket.Assign(params.AssigneeID); err != nil {
		return nil, err
	}

	// 4. Persist changes
	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	go s.broadcastEvent(domain.EventTicketAssigned, updated)

	return updated, nil
}

// ListTickets retrieves tickets, scoped to the viewer unless All is set
func (s *TicketService) ListTickets(ctx context.Context, params ports.ListTicketsParams) ([]*domain.Ticket, error) {
	repoParams := ports.ListTicketsRepoParams{
		Limit:    int32(params.Limit),
		Offset:   int32(params.Offset),
		Status:   params.Status,
		Priority: params.Priority,
	}

	if !params.All {
		viewerID := params.ViewerID
		repoParams.RequesterID = &viewerID
	}

	return s.ticketRepo.ListPaginated(ctx, repoParams)
}

func (s *TicketService) broadcastEvent(eventType domain.EventType, ticket *domain.Ticket) {
	event := domain.Event{
		Type:     eventType,
		Payload:  ticket,
		TicketID: ticket.ID,
	}
	_ = s.broadcaster.Broadcast(event)
}
