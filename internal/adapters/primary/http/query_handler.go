package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/euroblaze/ear-backend/internal/adapters/primary/validation"
	"github.com/euroblaze/ear-backend/internal/core/domain"
	apperrors "github.com/euroblaze/ear-backend/internal/core/errors"
	"github.com/euroblaze/ear-backend/internal/core/ports"
	"github.com/euroblaze/ear-backend/internal/core/utils"
)

const (
	maxQueryLength = 500
	snippetWords   = 25
)

// SearchHandler handles natural-language ticket search requests
type SearchHandler struct {
	translator   ports.QueryTranslator
	backend      ports.TicketBackend
	tickets      ports.TicketAggregator
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	translator ports.QueryTranslator,
	backend ports.TicketBackend,
	tickets ports.TicketAggregator,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *SearchHandler {
	return &SearchHandler{
		translator:   translator,
		backend:      backend,
		tickets:      tickets,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "search"),
	}
}

// Router sets up a new chi Router for the search routes.
func (h *SearchHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for the search endpoint.
func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleSearch)
}

// --- Request/Response DTOs ---

// SearchRequest defines the expected JSON body for a ticket search
type SearchRequest struct {
	Query string `json:"query"`
}

// Validate validates the search request
func (r *SearchRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("query", r.Query).
		MaxLength("query", r.Query, maxQueryLength).
		Custom("query", !hasControlChars(r.Query), "Must not contain control characters")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// hasControlChars reports whether s contains C0 control characters other
// than ordinary whitespace.
func hasControlChars(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// SearchTicketDTO defines the JSON response for one matched ticket.
type SearchTicketDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	AssigneeName string `json:"user_name"`
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
	StageName    string `json:"stage_name"`
	IsClosed     bool   `json:"is_closed"`
	CreateDate   string `json:"create_date,omitempty"`
	WriteDate    string `json:"write_date,omitempty"`
	CloseDate    string `json:"close_date,omitempty"`
}

// SearchResponse is the full JSON response for a search request.
type SearchResponse struct {
	Success      bool              `json:"success"`
	Query        string            `json:"query"`
	QuerySummary string            `json:"query_summary"`
	Filter       domain.Filter     `json:"filter"`
	ResultCount  int               `json:"result_count"`
	Tickets      []SearchTicketDTO `json:"tickets"`
}

func toSearchTicketDTO(t domain.EnrichedTicket) SearchTicketDTO {
	return SearchTicketDTO{
		ID:           t.ID,
		Name:         t.Name,
		Description:  utils.FirstNWords(t.Description, snippetWords),
		Priority:     t.Priority,
		AssigneeName: t.AssigneeName,
		CustomerName: t.CustomerName,
		ProjectName:  t.ProjectName,
		StageName:    t.StageName,
		IsClosed:     t.IsClosed,
		CreateDate:   t.CreateDate,
		WriteDate:    t.WriteDate,
		CloseDate:    t.CloseDate,
	}
}

// --- Handlers ---

// HandleSearch handles POST /search
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[SearchRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	filter, opts := h.translator.Parse(req.Query)
	summary := h.translator.Summary(filter, opts)

	h.logger.InfoContext(r.Context(), "translated ticket query",
		"query", req.Query,
		"conditions", len(filter),
		"limit", opts.Limit,
	)

	raw, err := h.backend.QueryTickets(r.Context(), filter, opts)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUpstreamError(err, "Ticket query failed"))
		return
	}

	enriched := h.tickets.EnrichAll(raw)

	dtos := make([]SearchTicketDTO, 0, len(enriched))
	for _, t := range enriched {
		dtos = append(dtos, toSearchTicketDTO(t))
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Success:      true,
		Query:        req.Query,
		QuerySummary: summary,
		Filter:       filter,
		ResultCount:  len(dtos),
		Tickets:      dtos,
	})
}
