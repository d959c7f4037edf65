package services

import (
	"context"
	"errors"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	personRepo ports.PersonRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(personRepo ports.PersonRepository) ports.AuthService {
	return &AuthService{personRepo: personRepo}
}

// Register creates a new account with validated credentials
func (s *AuthService) Register(ctx context.Context, params domain.PersonRegistrationParams) (*domain.Person, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Check if the email is already taken
	_, err := s.personRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, apperrors.ErrPersonExists
	}
	if !errors.Is(err, apperrors.ErrPersonNotFound) {
		return nil, err // An actual DB error occurred
	}

	person, err := domain.NewPerson(params)
	if err != nil {
		return nil, err
	}

	return s.personRepo.Create(ctx, person)
}

// Login authenticates a person with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Person, error) {
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	person, err := s.personRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrPersonNotFound) {
			// Don't reveal whether the email exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !person.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return person, nil
}
