package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PersonRepository is the secondary adapter for person persistence.
type PersonRepository struct {
	pool *pgxpool.Pool
}

var _ ports.PersonRepository = (*PersonRepository)(nil)

// NewPersonRepository creates a new person repository.
func NewPersonRepository(pool *pgxpool.Pool) ports.PersonRepository {
	return &PersonRepository{pool: pool}
}

const personColumns = `id, first_name, last_name, email, hashed_password, avatar_url, phone, is_active, created_at`

// Create persists a new person.
func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	const query = `
INSERT INTO people (id, first_name, last_name, email, hashed_password, avatar_url, phone, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + personColumns

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: person.ID, Valid: true},
		person.FirstName,
		person.LastName,
		person.Email,
		person.HashedPassword,
		textPtr(person.AvatarURL),
		person.Phone,
		person.IsActive,
		pgtype.Timestamptz{Time: person.CreatedAt, Valid: true},
	)

	created, err := scanPerson(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrPersonExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	const query = `SELECT ` + personColumns + ` FROM people WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true})

	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

// GetByEmail retrieves a person by email.
func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	const query = `SELECT ` + personColumns + ` FROM people WHERE email = $1`

	row := r.pool.QueryRow(ctx, query, email)

	person, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

func scanPerson(row pgx.Row) (*domain.Person, error) {
	var (
		id        pgtype.UUID
		avatarURL pgtype.Text
		phone     pgtype.Text
		createdAt pgtype.Timestamptz
		person    domain.Person
	)

	err := row.Scan(
		&id,
		&person.FirstName,
		&person.LastName,
		&person.Email,
		&person.HashedPassword,
		&avatarURL,
		&phone,
		&person.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	person.ID = id.Bytes
	person.Phone = textOrEmpty(phone)
	person.CreatedAt = createdAt.Time
	if avatarURL.Valid {
		value := avatarURL.String
		person.AvatarURL = &value
	}

	return &person, nil
}

// textPtr converts an optional string to its pgtype representation.
func textPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textOrEmpty(text pgtype.Text) string {
	if text.Valid {
		return text.String
	}
	return ""
}
