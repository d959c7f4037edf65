package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/soportehub/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// reportErrorMessages holds the per-report failure message returned to the
// dashboard. The frontend surfaces these verbatim, hence the Spanish.
var reportErrorMessages = map[domain.ReportKind]string{
	domain.ReportSummary:               "Error al obtener el resumen de tickets",
	domain.ReportResolutionRate:        "Error al calcular la tasa de resolución",
	domain.ReportMonthlySummary:        "Error al obtener el resumen mensual",
	domain.ReportByCategory:            "Error al obtener los tickets por categoría",
	domain.ReportTechnicianPerformance: "Error al obtener el rendimiento de los técnicos",
	domain.ReportCompanySummary:        "Error al obtener el resumen por empresa",
	domain.ReportRecentTickets:         "Error al obtener los tickets recientes",
}

// ReportHandler serves the dashboard reporting endpoint.
type ReportHandler struct {
	reportService ports.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService ports.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger.With("handler", "reports"),
	}
}

// RegisterRoutes mounts the reporting routes.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleReport)
}

// HandleReport handles GET /reports?route=<selector>. The selector is parsed
// into a ReportKind before anything touches the store; unknown selectors are
// rejected up front.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := mw.GetClaims(r.Context()); !ok {
		WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	kind, err := domain.ParseReportKind(r.URL.Query().Get("route"))
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid route")
		return
	}

	payload, err := h.run(r.Context(), kind)
	if err != nil {
		h.logger.Error("report failed",
			"report", kind.String(),
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		WriteMessage(w, http.StatusInternalServerError, reportErrorMessages[kind])
		return
	}

	WriteJSON(w, http.StatusOK, payload)
}

// run dispatches one report kind to its aggregation and shapes the response.
func (h *ReportHandler) run(ctx context.Context, kind domain.ReportKind) (any, error) {
	switch kind {
	case domain.ReportSummary:
		summary, err := h.reportService.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return toSummaryResponse(summary), nil

	case domain.ReportResolutionRate:
		rate, err := h.reportService.ResolutionRate(ctx)
		if err != nil {
			return nil, err
		}
		return ResolutionRateResponse{ResolutionRate: rate}, nil

	case domain.ReportMonthlySummary:
		buckets, err := h.reportService.MonthlySummary(ctx)
		if err != nil {
			return nil, err
		}
		return toMonthlySummaryResponse(buckets), nil

	case domain.ReportByCategory:
		breakdown, err := h.reportService.ByCategory(ctx)
		if err != nil {
			return nil, err
		}
		return toCategoryResponse(breakdown), nil

	case domain.ReportTechnicianPerformance:
		performance, err := h.reportService.TechnicianPerformance(ctx)
		if err != nil {
			return nil, err
		}
		return toTechnicianResponse(performance), nil

	case domain.ReportCompanySummary:
		summary, err := h.reportService.CompanySummary(ctx)
		if err != nil {
			return nil, err
		}
		return toCompanyResponse(summary), nil

	case domain.ReportRecentTickets:
		tickets, err := h.reportService.RecentTickets(ctx)
		if err != nil {
			return nil, err
		}
		return toRecentTicketsResponse(tickets), nil
	}

	return nil, domain.ErrUnknownReport
}

// SummaryResponse is the body for the summary report.
type SummaryResponse struct {
	TotalTickets     int64 `json:"totalTickets"`
	PendingTickets   int64 `json:"pendingTickets"`
	CompletedTickets int64 `json:"completedTickets"`
}

// ResolutionRateResponse is the body for the resolution-rate report.
type ResolutionRateResponse struct {
	ResolutionRate float64 `json:"resolutionRate"`
}

// MonthBucketDTO is one calendar-month bucket of the monthly summary.
type MonthBucketDTO struct {
	Month   string `json:"month"`
	Tickets int64  `json:"tickets"`
}

// CategoryDTO is one decorated row of the by-category report.
type CategoryDTO struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TechnicianDTO is one row of the technician-performance report.
type TechnicianDTO struct {
	Name      string `json:"name"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
}

// CompanyDTO is one row of the company-summary report.
type CompanyDTO struct {
	Name      string `json:"name"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
}

// TicketDTO is the JSON representation of a ticket.
type TicketDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	Priority    string  `json:"priority"`
	RequesterID string  `json:"requesterId"`
	AssigneeID  *string `json:"assigneeId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

func toSummaryResponse(summary domain.TicketSummary) SummaryResponse {
	return SummaryResponse{
		TotalTickets:     summary.Total,
		PendingTickets:   summary.Pending,
		CompletedTickets: summary.Completed,
	}
}

func toMonthlySummaryResponse(buckets []domain.MonthBucket) []MonthBucketDTO {
	response := make([]MonthBucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		response = append(response, MonthBucketDTO{
			Month:   bucket.Key(),
			Tickets: bucket.Tickets,
		})
	}
	return response
}

func toCategoryResponse(breakdown []domain.CategoryBreakdown) []CategoryDTO {
	response := make([]CategoryDTO, 0, len(breakdown))
	for _, row := range breakdown {
		response = append(response, CategoryDTO{
			Type:  row.Label,
			Count: row.Count,
			Color: row.Color,
			Icon:  row.Icon,
		})
	}
	return response
}

func toTechnicianResponse(performance []domain.TechnicianPerformance) []TechnicianDTO {
	response := make([]TechnicianDTO, 0, len(performance))
	for _, row := range performance {
		response = append(response, TechnicianDTO{
			Name:      row.Name,
			Total:     row.Total,
			Completed: row.Completed,
			Pending:   row.Pending,
		})
	}
	return response
}

func toCompanyResponse(summary []domain.CompanyPerformance) []CompanyDTO {
	response := make([]CompanyDTO, 0, len(summary))
	for _, row := range summary {
		response = append(response, CompanyDTO{
			Name:      row.Name,
			Completed: row.Completed,
			Pending:   row.Pending,
		})
	}
	return response
}

func toRecentTicketsResponse(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	dto := TicketDTO{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status.String(),
		Type:        ticket.Type.String(),
		Priority:    string(ticket.Priority),
		RequesterID: ticket.RequesterID.String(),
		CreatedAt:   ticket.CreatedAt.Format(time.RFC3339),
	}

	if ticket.AssigneeID != nil {
		value := ticket.AssigneeID.String()
		dto.AssigneeID = &value
	}
	if ticket.UpdatedAt != nil {
		value := ticket.UpdatedAt.Format(time.RFC3339)
		dto.UpdatedAt = &value
	}

	return dto
}
