package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// ReportRepository is the secondary adapter for the read-only reporting
// aggregations. Every report is a single grouped query; none of them loop
// over tickets or issue per-group follow-up queries.
type ReportRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a new report repository.
func NewReportRepository(pool *pgxpool.Pool) ports.ReportRepository {
	return &ReportRepository{pool: pool}
}

// StatusTotals returns the overall, OPEN-scoped and CLOSED-scoped counts in
// one pass over the table.
func (r *ReportRepository) StatusTotals(ctx context.Context) (domain.TicketSummary, error) {
	const query = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'OPEN'),
       COUNT(*) FILTER (WHERE status = 'CLOSED')
FROM tickets
`

	var summary domain.TicketSummary
	row := r.pool.QueryRow(ctx, query)
	if err := row.Scan(&summary.Total, &summary.Pending, &summary.Completed); err != nil {
		return domain.TicketSummary{}, err
	}
	return summary, nil
}

// CreatedByDay returns creation counts grouped by UTC day.
func (r *ReportRepository) CreatedByDay(ctx context.Context) ([]domain.DailyCount, error) {
	const query = `
SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, COUNT(*)
FROM tickets
GROUP BY 1
ORDER BY 1
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.DailyCount, 0)
	for rows.Next() {
		var (
			day   time.Time
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts = append(counts, domain.DailyCount{Day: day, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountByCategory returns one row per category that has tickets.
func (r *ReportRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	const query = `
SELECT type, COUNT(*)
FROM tickets
GROUP BY type
ORDER BY COUNT(*) DESC, type
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.CategoryCount, 0)
	for rows.Next() {
		var (
			category string
			count    int64
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts = append(counts, domain.CategoryCount{
			Category: domain.TicketCategory(category),
			Count:    count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// AssigneeLoads returns status-scoped counts grouped by assignee. The inner
// join drops tickets without an assignee and tickets whose assignee no longer
// resolves to a person.
func (r *ReportRepository) AssigneeLoads(ctx context.Context) ([]domain.AssigneeLoad, error) {
	const query = `
SELECT t.assignee_id,
       p.first_name,
       p.last_name,
       COUNT(*),
       COUNT(*) FILTER (WHERE t.status = 'CLOSED'),
       COUNT(*) FILTER (WHERE t.status = 'OPEN')
FROM tickets t
JOIN people p ON t.assignee_id = p.id
GROUP BY t.assignee_id, p.first_name, p.last_name
ORDER BY COUNT(*) DESC, p.first_name, p.last_name
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]domain.AssigneeLoad, 0)
	for rows.Next() {
		var (
			assigneeID pgtype.UUID
			load       domain.AssigneeLoad
		)
		err := rows.Scan(
			&assigneeID,
			&load.FirstName,
			&load.LastName,
			&load.Total,
			&load.Completed,
			&load.Pending,
		)
		if err != nil {
			return nil, err
		}
		load.AssigneeID = assigneeID.Bytes
		loads = append(loads, load)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}

// RequesterLoads returns status-scoped counts grouped by requester. The left
// join keeps groups whose requester no longer resolves to a person; those
// rows come back with HasPerson false.
func (r *ReportRepository) RequesterLoads(ctx context.Context) ([]domain.RequesterLoad, error) {
	const query = `
SELECT t.requester_id,
       p.first_name,
       p.last_name,
       p.id IS NOT NULL,
       COUNT(*) FILTER (WHERE t.status = 'CLOSED'),
       COUNT(*) FILTER (WHERE t.status = 'OPEN')
FROM tickets t
LEFT JOIN people p ON t.requester_id = p.id
GROUP BY t.requester_id, p.id, p.first_name, p.last_name
ORDER BY p.first_name, p.last_name, t.requester_id
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]domain.RequesterLoad, 0)
	for rows.Next() {
		var (
			requesterID pgtype.UUID
			firstName   pgtype.Text
			lastName    pgtype.Text
			load        domain.RequesterLoad
		)
		err := rows.Scan(
			&requesterID,
			&firstName,
			&lastName,
			&load.HasPerson,
			&load.Completed,
			&load.Pending,
		)
		if err != nil {
			return nil, err
		}
		load.RequesterID = requesterID.Bytes
		load.FirstName = textOrEmpty(firstName)
		load.LastName = textOrEmpty(lastName)
		loads = append(loads, load)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}

// MostRecent returns the newest tickets by creation time, descending.
func (r *ReportRepository) MostRecent(ctx context.Context, limit int32) ([]*domain.Ticket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM tickets
ORDER BY created_at DESC
LIMIT $1
`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0, limit)
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
