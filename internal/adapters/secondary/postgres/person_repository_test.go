package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// newTestPerson builds a valid person with a unique email.
func newTestPerson(t *testing.T) *domain.Person {
	t.Helper()
	person, err := domain.NewPerson(domain.PersonRegistrationParams{
		FirstName: "Ana",
		LastName:  "García",
		Email:     uuid.NewString() + "@example.com",
		Password:  "Sup3rSecret",
		Phone:     "555-0101",
	})
	require.NoError(t, err)
	return person
}

// createTestPerson persists a person for use by other tests in this package.
func createTestPerson(t *testing.T, ctx context.Context, repo ports.PersonRepository) *domain.Person {
	t.Helper()
	created, err := repo.Create(ctx, newTestPerson(t))
	require.NoError(t, err)
	return created
}

func TestPersonRepository_CreateGet(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewPersonRepository(testPool)

	person := newTestPerson(t)
	created, err := repo.Create(ctx, person)
	require.NoError(t, err)
	assert.Equal(t, person.ID, created.ID)
	assert.Equal(t, person.Email, created.Email)
	assert.True(t, created.IsActive)

	found, err := repo.GetByID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.FirstName)
	assert.Equal(t, "García", found.LastName)
	assert.Equal(t, "555-0101", found.Phone)
	assert.True(t, found.CheckPassword("Sup3rSecret"))
}

func TestPersonRepository_GetByEmail(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewPersonRepository(testPool)

	person := createTestPerson(t, ctx, repo)

	found, err := repo.GetByEmail(ctx, person.Email)
	require.NoError(t, err)
	assert.Equal(t, person.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrPersonNotFound)
}

func TestPersonRepository_DuplicateEmail(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewPersonRepository(testPool)

	person := createTestPerson(t, ctx, repo)

	duplicate := newTestPerson(t)
	duplicate.Email = person.Email

	_, err := repo.Create(ctx, duplicate)
	assert.ErrorIs(t, err, apperrors.ErrPersonExists)
}

func TestPersonRepository_GetByID_NotFound(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()
	repo := NewPersonRepository(testPool)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrPersonNotFound)
}
