package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pre-defined errors for domain-specific validation.
var (
	ErrTitleRequired           = errors.New("title is required")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidPriority         = errors.New("invalid ticket priority")
)

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusClosed     TicketStatus = "CLOSED"
)

func (s TicketStatus) String() string { return string(s) }

// IsValid reports whether the status belongs to the closed set of states.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is the core domain entity.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	Type        TicketCategory
	Priority    TicketPriority
	RequesterID uuid.UUID
	AssigneeID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// TicketParams holds the input for creating a new ticket.
type TicketParams struct {
	Title       string
	Description string
	Type        TicketCategory
	Priority    TicketPriority
	RequesterID uuid.UUID
}

// NewTicket is a factory function to create a valid new ticket.
func NewTicket(params TicketParams) (*Ticket, error) {
	if params.Title == "" {
		return nil, ErrTitleRequired
	}
	if !params.Type.IsValid() {
		return nil, ErrInvalidCategory
	}

	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	return &Ticket{
		Title:       params.Title,
		Description: params.Description,
		Status:      StatusOpen, // Default status
		Type:        params.Type,
		Priority:    priority,
		RequesterID: params.RequesterID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// UpdateStatus changes the ticket's status, enforcing business rules.
func (t *Ticket) UpdateStatus(newStatus TicketStatus) error {
	// Defines the valid state transitions.
	validTransitions := map[TicketStatus][]TicketStatus{
		StatusOpen:       {StatusInProgress, StatusClosed},
		StatusInProgress: {StatusOpen, StatusClosed},
		StatusClosed:     {}, // Cannot transition from closed
	}

	allowed, ok := validTransitions[t.Status]
	if !ok {
		return ErrInvalidStatusTransition
	}

	for _, s := range allowed {
		if s == newStatus {
			t.Status = newStatus
			now := time.Now().UTC()
			t.UpdatedAt = &now
			return nil
		}
	}

	return ErrInvalidStatusTransition
}

// Assign sets or changes the assignee of the ticket.
func (t *Ticket) Assign(assigneeID uuid.UUID) error {
	// Business rule: you cannot assign a closed ticket.
	if t.Status == StatusClosed {
		return errors.New("cannot assign a closed ticket")
	}
	t.AssigneeID = &assigneeID
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return nil
}

// IsOwnedBy reports whether the given person requested the ticket.
func (t *Ticket) IsOwnedBy(personID uuid.UUID) bool {
	return t.RequesterID == personID
}

// IsAssignedTo reports whether the ticket is assigned to the given person.
func (t *Ticket) IsAssignedTo(personID uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == personID
}
