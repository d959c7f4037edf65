package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/soportehub/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/soportehub/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/soportehub/helpdesk-backend/internal/auth"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

const maxListLimit = 100

// TicketHandler serves the ticket management routes.
type TicketHandler struct {
	ticketService ports.TicketService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService ports.TicketService, errorHandler *ErrorHandler, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "tickets"),
	}
}

// RegisterRoutes mounts the ticket routes.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateTicket)
	r.Get("/", h.HandleListTickets)
	r.Get("/{ticketID}", h.HandleGetTicket)
	r.Patch("/{ticketID}/status", h.HandleUpdateStatus)
	r.Patch("/{ticketID}/assign", h.HandleAssignTicket)
}

// CreateTicketRequest is the payload for creating a ticket.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, 255).
		Required("type", r.Type).
		Custom("type", domain.TicketCategory(r.Type).IsValid(), "Invalid ticket category")

	if r.Priority != "" {
		v.OneOf("priority", r.Priority, []string{"LOW", "MEDIUM", "HIGH"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateStatusRequest is the payload for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"OPEN", "IN_PROGRESS", "CLOSED"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignTicketRequest is the payload for assigning a ticket.
type AssignTicketRequest struct {
	AssigneeID string `json:"assigneeId"`
}

func (r *AssignTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("assigneeId", r.AssigneeID)
	if r.AssigneeID != "" {
		_, err := uuid.Parse(r.AssigneeID)
		v.Custom("assigneeId", err == nil, "Must be a valid UUID")
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), ports.CreateTicketParams{
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.TicketCategory(req.Type),
		Priority:    domain.TicketPriority(req.Priority),
		RequesterID: claims.PersonID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleListTickets handles GET /tickets
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	pagination := validation.ParsePagination(r, maxListLimit)

	params := ports.ListTicketsParams{
		ViewerID: claims.PersonID,
		Limit:    pagination.Limit + 1, // fetch one extra row to detect more pages
		Offset:   pagination.Offset,
		Status:   validation.ParseStringQueryParam(r, "status"),
		Priority: validation.ParseStringQueryParam(r, "priority"),
		All:      validation.ParseBoolQueryParam(r, "all", false),
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID, claims.PersonID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateStatus handles PATCH /tickets/{ticketID}/status
func (h *TicketHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.UpdateStatus(r.Context(), ports.UpdateStatusParams{
		TicketID: ticketID,
		Status:   domain.TicketStatus(req.Status),
		ActorID:  claims.PersonID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleAssignTicket handles PATCH /tickets/{ticketID}/assign
func (h *TicketHandler) HandleAssignTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	assigneeID, _ := uuid.Parse(req.AssigneeID)

	ticket, err := h.ticketService.AssignTicket(r.Context(), ports.AssignTicketParams{
		TicketID:   ticketID,
		AssigneeID: assigneeID,
		ActorID:    claims.PersonID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

func (h *TicketHandler) parseTicketID(r *http.Request) (int64, error) {
	idParam := chi.URLParam(r, "ticketID")
	ticketID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		v := validation.NewValidator()
		v.Custom("ticketID", false, "Invalid ticket ID")
		return 0, v.Errors()
	}
	return ticketID, nil
}

// getClaims extracts the validated claims from the request context.
func (h *TicketHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}
