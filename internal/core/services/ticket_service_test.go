package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/mocks"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

func newTicketServiceWithMocks() (*TicketService, *mocks.MockTicketRepository, *mocks.MockPersonRepository, *mocks.MockEventBroadcaster) {
	ticketRepo := mocks.NewMockTicketRepository()
	personRepo := mocks.NewMockPersonRepository()
	broadcaster := mocks.NewMockEventBroadcaster()
	svc := NewTicketService(ticketRepo, personRepo, broadcaster).(*TicketService)
	return svc, ticketRepo, personRepo, broadcaster
}

func TestTicketService_CreateTicket(t *testing.T) {
	requesterID := uuid.New()

	t.Run("creates and broadcasts", func(t *testing.T) {
		svc, ticketRepo, _, broadcaster := newTicketServiceWithMocks()

		created := &domain.Ticket{
			ID:          42,
			Title:       "Printer jam",
			Status:      domain.StatusOpen,
			Type:        domain.CategoryHardware,
			Priority:    domain.PriorityMedium,
			RequesterID: requesterID,
			CreatedAt:   time.Now().UTC(),
		}

		ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(created, nil)
		broadcaster.On("Broadcast", mock.MatchedBy(func(event domain.Event) bool {
			return event.Type == domain.EventTicketCreated && event.TicketID == 42
		})).Return(nil).Maybe()

		ticket, err := svc.CreateTicket(context.Background(), ports.CreateTicketParams{
			Title:       "Printer jam",
			Type:        domain.CategoryHardware,
			RequesterID: requesterID,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(42), ticket.ID)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid input without touching the store", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()

		_, err := svc.CreateTicket(context.Background(), ports.CreateTicketParams{
			Type:        domain.CategoryHardware,
			RequesterID: requesterID,
		})

		assert.ErrorIs(t, err, domain.ErrTitleRequired)
		ticketRepo.AssertNotCalled(t, "Create")
	})
}

func TestTicketService_GetTicket(t *testing.T) {
	ownerID := uuid.New()
	assigneeID := uuid.New()
	strangerID := uuid.New()

	ticket := &domain.Ticket{
		ID:          7,
		Title:       "No sound",
		Status:      domain.StatusOpen,
		RequesterID: ownerID,
		AssigneeID:  &assigneeID,
	}

	t.Run("owner can view", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()
		ticketRepo.On("GetByID", mock.Anything, int64(7)).Return(ticket, nil)

		found, err := svc.GetTicket(context.Background(), 7, ownerID)
		require.NoError(t, err)
		assert.Equal(t, ticket, found)
	})

	t.Run("assignee can view", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()
		ticketRepo.On("GetByID", mock.Anything, int64(7)).Return(ticket, nil)

		_, err := svc.GetTicket(context.Background(), 7, assigneeID)
		require.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()
		ticketRepo.On("GetByID", mock.Anything, int64(7)).Return(ticket, nil)

		_, err := svc.GetTicket(context.Background(), 7, strangerID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("missing ticket", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()
		ticketRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrTicketNotFound)

		_, err := svc.GetTicket(context.Background(), 99, ownerID)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_UpdateStatus(t *testing.T) {
	actorID := uuid.New()

	t.Run("valid transition persists and broadcasts", func(t *testing.T) {
		svc, ticketRepo, _, broadcaster := newTicketServiceWithMocks()

		stored := &domain.Ticket{ID: 3, Title: "Slow laptop", Status: domain.StatusOpen, RequesterID: actorID}
		ticketRepo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)
		ticketRepo.On("Update", mock.Anything, mock.MatchedBy(func(ticket *domain.Ticket) bool {
			return ticket.Status == domain.StatusInProgress
		})).Return(stored, nil)
		broadcaster.On("Broadcast", mock.Anything).Return(nil).Maybe()

		_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusParams{
			TicketID: 3,
			Status:   domain.StatusInProgress,
			ActorID:  actorID,
		})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("invalid transition never hits the store", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()

		stored := &domain.Ticket{ID: 3, Title: "Slow laptop", Status: domain.StatusClosed, RequesterID: actorID}
		ticketRepo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)

		_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusParams{
			TicketID: 3,
			Status:   domain.StatusOpen,
			ActorID:  actorID,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
		ticketRepo.AssertNotCalled(t, "Update")
	})
}

func TestTicketService_AssignTicket(t *testing.T) {
	actorID := uuid.New()
	assigneeID := uuid.New()

	t.Run("assigns an existing person", func(t *testing.T) {
		svc, ticketRepo, personRepo, broadcaster := newTicketServiceWithMocks()

		personRepo.On("GetByID", mock.Anything, assigneeID).
			Return(&domain.Person{ID: assigneeID}, nil)

		stored := &domain.Ticket{ID: 5, Title: "Access request", Status: domain.StatusOpen, RequesterID: actorID}
		ticketRepo.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)
		ticketRepo.On("Update", mock.Anything, mock.MatchedBy(func(ticket *domain.Ticket) bool {
			return ticket.AssigneeID != nil && *ticket.AssigneeID == assigneeID
		})).Return(stored, nil)
		broadcaster.On("Broadcast", mock.Anything).Return(nil).Maybe()

		_, err := svc.AssignTicket(context.Background(), ports.AssignTicketParams{
			TicketID:   5,
			AssigneeID: assigneeID,
			ActorID:    actorID,
		})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown assignee", func(t *testing.T) {
		svc, ticketRepo, personRepo, _ := newTicketServiceWithMocks()

		personRepo.On("GetByID", mock.Anything, assigneeID).
			Return(nil, apperrors.ErrPersonNotFound)

		_, err := svc.AssignTicket(context.Background(), ports.AssignTicketParams{
			TicketID:   5,
			AssigneeID: assigneeID,
			ActorID:    actorID,
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
		ticketRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestTicketService_ListTickets(t *testing.T) {
	viewerID := uuid.New()

	t.Run("scopes to the viewer by default", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()

		ticketRepo.On("ListPaginated", mock.Anything, mock.MatchedBy(func(params ports.ListTicketsRepoParams) bool {
			return params.RequesterID != nil && *params.RequesterID == viewerID
		})).Return([]*domain.Ticket{}, nil)

		_, err := svc.ListTickets(context.Background(), ports.ListTicketsParams{
			ViewerID: viewerID,
			Limit:    10,
		})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})

	t.Run("all flag lifts the scope", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceWithMocks()

		ticketRepo.On("ListPaginated", mock.Anything, mock.MatchedBy(func(params ports.ListTicketsRepoParams) bool {
			return params.RequesterID == nil
		})).Return([]*domain.Ticket{}, nil)

		_, err := svc.ListTickets(context.Background(), ports.ListTicketsParams{
			ViewerID: viewerID,
			Limit:    10,
			All:      true,
		})

		require.NoError(t, err)
		ticketRepo.AssertExpectations(t)
	})
}
