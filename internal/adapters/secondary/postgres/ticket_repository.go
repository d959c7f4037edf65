package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// TicketRepository is the secondary adapter for ticket persistence.
type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, type, priority, requester_id, assignee_id, created_at, updated_at`

// Create persists a new ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
INSERT INTO tickets (title, description, status, type, priority, requester_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		string(ticket.Status),
		string(ticket.Type),
		string(ticket.Priority),
		pgtype.UUID{Bytes: ticket.RequesterID, Valid: true},
		pgtype.Timestamptz{Time: ticket.CreatedAt, Valid: true},
	)

	return scanTicket(row)
}

// GetByID retrieves a single ticket by its ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// Update persists changes to an existing ticket.
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
UPDATE tickets
SET status = $2, assignee_id = $3, updated_at = $4
WHERE id = $1
RETURNING ` + ticketColumns

	assigneeID := pgtype.UUID{}
	if ticket.AssigneeID != nil {
		assigneeID = pgtype.UUID{Bytes: *ticket.AssigneeID, Valid: true}
	}

	updatedAt := pgtype.Timestamptz{}
	if ticket.UpdatedAt != nil {
		updatedAt = pgtype.Timestamptz{Time: *ticket.UpdatedAt, Valid: true}
	}

	updated, err := scanTicket(r.pool.QueryRow(ctx, query, ticket.ID, string(ticket.Status), assigneeID, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListPaginated retrieves tickets with pagination and optional filters,
// newest first.
func (r *TicketRepository) ListPaginated(ctx context.Context, params ports.ListTicketsRepoParams) ([]*domain.Ticket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE ($3::text IS NULL OR status = $3)
  AND ($4::text IS NULL OR priority = $4)
  AND ($5::uuid IS NULL OR requester_id = $5)
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

	requesterID := pgtype.UUID{}
	if params.RequesterID != nil {
		requesterID = pgtype.UUID{Bytes: *params.RequesterID, Valid: true}
	}

	rows, err := r.pool.Query(ctx, query,
		params.Limit,
		params.Offset,
		params.Status,
		params.Priority,
		requesterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// scanTicket maps one row of ticketColumns onto the domain entity.
func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		status      string
		category    string
		priority    string
		requesterID pgtype.UUID
		assigneeID  pgtype.UUID
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		ticket      domain.Ticket
	)

	err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&status,
		&category,
		&priority,
		&requesterID,
		&assigneeID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Status = domain.TicketStatus(status)
	ticket.Type = domain.TicketCategory(category)
	ticket.Priority = domain.TicketPriority(priority)
	ticket.RequesterID = requesterID.Bytes
	ticket.CreatedAt = createdAt.Time

	if assigneeID.Valid {
		value := uuid.UUID(assigneeID.Bytes)
		ticket.AssigneeID = &value
	}
	if updatedAt.Valid {
		value := updatedAt.Time
		ticket.UpdatedAt = &value
	}

	return &ticket, nil
}
