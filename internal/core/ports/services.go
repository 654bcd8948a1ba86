package ports

import (
	"context"

	"github.com/euroblaze/ear-backend/internal/core/domain"
)

// ActivityAggregator groups raw collaboration events by developer.
type ActivityAggregator interface {
	// Aggregate produces one activity summary per developer. When
	// filterDevs is non-empty, only the named developers appear in the
	// result.
	Aggregate(feed *domain.ActivityFeed, filterDevs map[string]struct{}) map[string]*domain.DeveloperActivity
}

// TicketAggregator enriches raw tickets and groups them by assignee.
type TicketAggregator interface {
	// WarmCaches populates the user/partner/stage lookup caches from the
	// ticket backend. It fails loudly; callers may log the error and
	// proceed, in which case enrichment degrades to defaults.
	WarmCaches(ctx context.Context) error

	// Enrich resolves a ticket's references and derives its closed flag.
	Enrich(t domain.Ticket) domain.EnrichedTicket

	// EnrichAll enriches every ticket in input order.
	EnrichAll(tickets []domain.Ticket) []domain.EnrichedTicket

	// Aggregate produces one activity summary per assignee. When
	// filterUsers is non-empty, tickets assigned to other users are
	// skipped.
	Aggregate(tickets []domain.Ticket, filterUsers map[string]struct{}) map[string]*domain.UserActivity
}

// QueryTranslator maps free-text ticket queries to filter expressions.
type QueryTranslator interface {
	// Parse translates natural-language text into a filter and options.
	// Unmatched patterns are never errors; they are simply omitted.
	Parse(text string) (domain.Filter, domain.QueryOptions)

	// Summary renders a human-readable sentence describing the filter.
	Summary(filter domain.Filter, opts domain.QueryOptions) string
}
