package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soportehub/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/soportehub/helpdesk-backend/internal/auth"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// AuthHandler serves the registration and login routes.
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	authService ports.AuthService,
	tokenManager *auth.TokenManager,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "auth"),
	}
}

// RegisterRoutes mounts the auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PersonResponse is the public representation of a person.
type PersonResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// TokenResponse is the body returned on successful authentication.
type TokenResponse struct {
	Token  string         `json:"token"`
	Person PersonResponse `json:"person"`
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	person, err := h.authService.Register(r.Context(), domain.PersonRegistrationParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokenManager.GenerateToken(person.ID)
	if err != nil {
		h.logger.Error("token generation failed",
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, TokenResponse{
		Token:  token,
		Person: toPersonResponse(person),
	})
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	person, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokenManager.GenerateToken(person.ID)
	if err != nil {
		h.logger.Error("token generation failed",
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{
		Token:  token,
		Person: toPersonResponse(person),
	})
}

func toPersonResponse(person *domain.Person) PersonResponse {
	return PersonResponse{
		ID:        person.ID.String(),
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Email:     person.Email,
		Phone:     person.Phone,
		CreatedAt: person.CreatedAt.Format(time.RFC3339),
	}
}
