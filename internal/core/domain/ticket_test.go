package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicket(t *testing.T) {
	requesterID := uuid.New()

	t.Run("creates ticket with defaults", func(t *testing.T) {
		ticket, err := NewTicket(TicketParams{
			Title:       "Printer on fire",
			Description: "Third floor, again",
			Type:        CategoryHardware,
			RequesterID: requesterID,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusOpen, ticket.Status)
		assert.Equal(t, PriorityMedium, ticket.Priority)
		assert.Equal(t, requesterID, ticket.RequesterID)
		assert.Nil(t, ticket.AssigneeID)
		assert.False(t, ticket.CreatedAt.IsZero())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewTicket(TicketParams{
			Type:        CategorySoftware,
			RequesterID: requesterID,
		})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewTicket(TicketParams{
			Title:       "VPN down",
			Type:        TicketCategory("PLUMBING"),
			RequesterID: requesterID,
		})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := NewTicket(TicketParams{
			Title:       "VPN down",
			Type:        CategoryNetwork,
			Priority:    TicketPriority("URGENT"),
			RequesterID: requesterID,
		})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestTicket_UpdateStatus(t *testing.T) {
	newOpenTicket := func() *Ticket {
		ticket, err := NewTicket(TicketParams{
			Title:       "Laptop won't boot",
			Type:        CategoryHardware,
			RequesterID: uuid.New(),
		})
		require.NoError(t, err)
		return ticket
	}

	t.Run("open to in progress", func(t *testing.T) {
		ticket := newOpenTicket()
		require.NoError(t, ticket.UpdateStatus(StatusInProgress))
		assert.Equal(t, StatusInProgress, ticket.Status)
		assert.NotNil(t, ticket.UpdatedAt)
	})

	t.Run("in progress back to open", func(t *testing.T) {
		ticket := newOpenTicket()
		require.NoError(t, ticket.UpdateStatus(StatusInProgress))
		require.NoError(t, ticket.UpdateStatus(StatusOpen))
		assert.Equal(t, StatusOpen, ticket.Status)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		ticket := newOpenTicket()
		require.NoError(t, ticket.UpdateStatus(StatusClosed))

		err := ticket.UpdateStatus(StatusOpen)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Equal(t, StatusClosed, ticket.Status)
	})

	t.Run("same status is not a transition", func(t *testing.T) {
		ticket := newOpenTicket()
		err := ticket.UpdateStatus(StatusOpen)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestTicket_Assign(t *testing.T) {
	requesterID := uuid.New()
	assigneeID := uuid.New()

	t.Run("assigns open ticket", func(t *testing.T) {
		ticket, err := NewTicket(TicketParams{
			Title:       "Email bouncing",
			Type:        CategorySoftware,
			RequesterID: requesterID,
		})
		require.NoError(t, err)

		require.NoError(t, ticket.Assign(assigneeID))
		require.NotNil(t, ticket.AssigneeID)
		assert.Equal(t, assigneeID, *ticket.AssigneeID)
		assert.True(t, ticket.IsAssignedTo(assigneeID))
	})

	t.Run("rejects closed ticket", func(t *testing.T) {
		ticket, err := NewTicket(TicketParams{
			Title:       "Email bouncing",
			Type:        CategorySoftware,
			RequesterID: requesterID,
		})
		require.NoError(t, err)
		require.NoError(t, ticket.UpdateStatus(StatusClosed))

		assert.Error(t, ticket.Assign(assigneeID))
		assert.Nil(t, ticket.AssigneeID)
	})
}

func TestTicket_Ownership(t *testing.T) {
	requesterID := uuid.New()
	ticket, err := NewTicket(TicketParams{
		Title:       "Monitor flickers",
		Type:        CategoryHardware,
		RequesterID: requesterID,
	})
	require.NoError(t, err)

	assert.True(t, ticket.IsOwnedBy(requesterID))
	assert.False(t, ticket.IsOwnedBy(uuid.New()))
	assert.False(t, ticket.IsAssignedTo(requesterID))
}
