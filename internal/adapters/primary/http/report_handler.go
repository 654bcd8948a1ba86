package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/euroblaze/ear-backend/internal/adapters/primary/validation"
	"github.com/euroblaze/ear-backend/internal/core/domain"
	apperrors "github.com/euroblaze/ear-backend/internal/core/errors"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// Period codes accepted by the report endpoints.
var validPeriods = []string{"7d", "14d", "week", "lastweek", "month", "lastmonth", "quarter", "year"}

// ReportHandler handles activity and ticket report requests
type ReportHandler struct {
	source        ports.ActivitySource
	backend       ports.TicketBackend
	activity      ports.ActivityAggregator
	tickets       ports.TicketAggregator
	defaultOrgs   []string
	defaultPeriod string
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	source ports.ActivitySource,
	backend ports.TicketBackend,
	activity ports.ActivityAggregator,
	tickets ports.TicketAggregator,
	defaultOrgs []string,
	defaultPeriod string,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		source:        source,
		backend:       backend,
		activity:      activity,
		tickets:       tickets,
		defaultOrgs:   defaultOrgs,
		defaultPeriod: defaultPeriod,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "report"),
	}
}

// Router sets up a new chi Router for all report routes.
func (h *ReportHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all report endpoints.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/activity", h.HandleActivityReport)
	r.Get("/tickets", h.HandleTicketReport)
}

// --- Response DTOs ---

// PeriodDTO describes the resolved reporting window.
type PeriodDTO struct {
	Code  string `json:"code"`
	Since string `json:"since"`
	Until string `json:"until"`
	Label string `json:"label"`
}

func toPeriodDTO(p domain.Period) PeriodDTO {
	return PeriodDTO{
		Code:  p.Code,
		Since: p.SinceDate(),
		Until: p.UntilDate(),
		Label: p.Label,
	}
}

// ActivityReportResponse is the JSON response for an activity report.
type ActivityReportResponse struct {
	Success    bool                                 `json:"success"`
	Period     PeriodDTO                            `json:"period"`
	Orgs       []string                             `json:"orgs"`
	Developers map[string]*domain.DeveloperActivity `json:"developers"`
}

// TicketReportResponse is the JSON response for a ticket report.
type TicketReportResponse struct {
	Success bool                            `json:"success"`
	Period  PeriodDTO                       `json:"period"`
	Users   map[string]*domain.UserActivity `json:"users"`
}

// --- Handlers ---

// HandleActivityReport handles GET /reports/activity
func (h *ReportHandler) HandleActivityReport(w http.ResponseWriter, r *http.Request) {
	periodCode := validation.ParseStringQueryParam(r, "period")
	if err := validatePeriod(periodCode); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if periodCode == "" {
		periodCode = h.defaultPeriod
	}

	orgs := csvParam(r, "orgs")
	if len(orgs) == 0 {
		orgs = h.defaultOrgs
	}
	if len(orgs) == 0 {
		h.errorHandler.Handle(w, r, apperrors.ErrOrgsRequired)
		return
	}

	period := domain.ResolvePeriod(periodCode, time.Now())
	devs := csvSet(r, "devs")

	feed, err := h.source.FetchRecentActivity(r.Context(), orgs, period.Since)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUpstreamError(err, "Activity fetch failed"))
		return
	}

	developers := h.activity.Aggregate(feed, devs)

	h.logger.InfoContext(r.Context(), "activity report generated",
		"period", period.Code,
		"orgs", len(orgs),
		"developers", len(developers),
	)

	WriteJSON(w, http.StatusOK, ActivityReportResponse{
		Success:    true,
		Period:     toPeriodDTO(period),
		Orgs:       orgs,
		Developers: developers,
	})
}

// HandleTicketReport handles GET /reports/tickets
func (h *ReportHandler) HandleTicketReport(w http.ResponseWriter, r *http.Request) {
	periodCode := validation.ParseStringQueryParam(r, "period")
	if err := validatePeriod(periodCode); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if periodCode == "" {
		periodCode = h.defaultPeriod
	}

	period := domain.ResolvePeriod(periodCode, time.Now())
	users := csvSet(r, "users")

	raw, err := h.backend.FetchTickets(r.Context(), period.Since, period.Until)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUpstreamError(err, "Ticket fetch failed"))
		return
	}

	summaries := h.tickets.Aggregate(raw, users)

	h.logger.InfoContext(r.Context(), "ticket report generated",
		"period", period.Code,
		"tickets", len(raw),
		"users", len(summaries),
	)

	WriteJSON(w, http.StatusOK, TicketReportResponse{
		Success: true,
		Period:  toPeriodDTO(period),
		Users:   summaries,
	})
}

// validatePeriod rejects unknown period codes. An empty code selects the
// default window.
func validatePeriod(code string) error {
	v := validation.NewValidator()
	v.OneOf("period", code, validPeriods)
	if v.HasErrors() {
		return apperrors.NewBadRequestError(apperrors.ErrInvalidPeriod,
			"Unknown period. Valid values: "+strings.Join(validPeriods, ", "))
	}
	return nil
}

// csvParam splits a comma-separated query parameter into trimmed values.
func csvParam(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// csvSet is csvParam collected into a membership set.
func csvSet(r *http.Request, key string) map[string]struct{} {
	values := csvParam(r, key)
	if len(values) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
