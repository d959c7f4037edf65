package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/soportehub/helpdesk-backend/internal/core/errors"
)

// Password validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 255
	MaxEmailLength    = 255
)

// Person is a human record. The same record can act as a requesting client or
// as an assigned technician depending on which ticket field references it; it
// carries no role tag of its own.
type Person struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	HashedPassword string
	AvatarURL      *string
	Phone          string
	IsActive       bool
	CreatedAt      time.Time
}

// FullName returns the display name used across reports.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PersonRegistrationParams holds parameters for registering a person.
type PersonRegistrationParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Validate validates registration parameters.
func (p *PersonRegistrationParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.FirstName == "" {
		errs.Add("firstName", "First name is required")
	} else if len(p.FirstName) > MaxNameLength {
		errs.Add("firstName", "First name must be 255 characters or less")
	}

	if p.LastName == "" {
		errs.Add("lastName", "Last name is required")
	} else if len(p.LastName) > MaxNameLength {
		errs.Add("lastName", "Last name must be 255 characters or less")
	}

	if p.Email == "" {
		errs.Add("email", "Email is required")
	} else if len(p.Email) > MaxEmailLength {
		errs.Add("email", "Email must be 255 characters or less")
	} else if !isValidEmail(p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if passwordErrs := ValidatePassword(p.Password); len(passwordErrs) > 0 {
		for _, err := range passwordErrs {
			errs.Add("password", err)
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
// Returns a slice of error messages (empty if valid).
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < MinPasswordLength {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		errors = append(errors, "Password must be 128 characters or less")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if !hasNumber {
		errors = append(errors, "Password must contain at least one number")
	}

	return errors
}

// isValidEmail validates email format
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// CheckPassword verifies if the provided password matches the stored hash.
func (p *Person) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.HashedPassword), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if errs := ValidatePassword(password); len(errs) > 0 {
		return "", apperrors.ErrPasswordTooWeak
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewPerson creates a new person with validated parameters.
func NewPerson(params PersonRegistrationParams) (*Person, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &Person{
		ID:             uuid.New(),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		HashedPassword: hashedPassword,
		Phone:          params.Phone,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
