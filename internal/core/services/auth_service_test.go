package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/mocks"
)

func validRegistration() domain.PersonRegistrationParams {
	return domain.PersonRegistrationParams{
		FirstName: "Ana",
		LastName:  "García",
		Email:     "ana.garcia@example.com",
		Password:  "Sup3rSecret",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a new person", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		personRepo.On("GetByEmail", mock.Anything, "ana.garcia@example.com").
			Return(nil, apperrors.ErrPersonNotFound)
		personRepo.On("Create", mock.Anything, mock.MatchedBy(func(person *domain.Person) bool {
			return person.Email == "ana.garcia@example.com" &&
				person.HashedPassword != "" &&
				person.HashedPassword != "Sup3rSecret"
		})).Return(&domain.Person{Email: "ana.garcia@example.com"}, nil)

		person, err := svc.Register(context.Background(), validRegistration())

		require.NoError(t, err)
		assert.Equal(t, "ana.garcia@example.com", person.Email)
		personRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		personRepo.On("GetByEmail", mock.Anything, "ana.garcia@example.com").
			Return(&domain.Person{Email: "ana.garcia@example.com"}, nil)

		_, err := svc.Register(context.Background(), validRegistration())

		assert.ErrorIs(t, err, apperrors.ErrPersonExists)
		personRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		params := validRegistration()
		params.Password = "short"

		_, err := svc.Register(context.Background(), params)

		var validationErrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.Errors, "password")
		personRepo.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := domain.HashPassword("Sup3rSecret")
	require.NoError(t, err)

	stored := &domain.Person{
		Email:          "ana.garcia@example.com",
		HashedPassword: hashed,
	}

	t.Run("valid credentials", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		personRepo.On("GetByEmail", mock.Anything, "ana.garcia@example.com").Return(stored, nil)

		person, err := svc.Login(context.Background(), "ana.garcia@example.com", "Sup3rSecret")

		require.NoError(t, err)
		assert.Equal(t, stored.Email, person.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		personRepo.On("GetByEmail", mock.Anything, "ana.garcia@example.com").Return(stored, nil)

		_, err := svc.Login(context.Background(), "ana.garcia@example.com", "WrongPass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		personRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, apperrors.ErrPersonNotFound)

		_, err := svc.Login(context.Background(), "nobody@example.com", "Sup3rSecret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("empty fields", func(t *testing.T) {
		personRepo := mocks.NewMockPersonRepository()
		svc := NewAuthService(personRepo)

		_, err := svc.Login(context.Background(), "", "Sup3rSecret")
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)

		_, err = svc.Login(context.Background(), "ana.garcia@example.com", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)
	})
}
