package ports

import (
	"context"
	"time"

	"github.com/euroblaze/ear-backend/internal/core/domain"
)

// ActivitySource fetches recent collaboration events (issues, pull
// requests, comments, reviews) from the source-control platform.
type ActivitySource interface {
	// FetchRecentActivity returns issues and pull requests in the given
	// organizations updated on or after since. Only the first page of
	// results is fetched.
	FetchRecentActivity(ctx context.Context, orgs []string, since time.Time) (*domain.ActivityFeed, error)
}

// TicketBackend is the remote helpdesk system holding raw tickets and the
// reference data needed to enrich them.
type TicketBackend interface {
	// Ping verifies the backend connection is usable.
	Ping(ctx context.Context) error

	// CurrentUserID returns the id of the authenticated backend user.
	CurrentUserID() int64

	// FetchTickets returns tickets written within the inclusive date window.
	FetchTickets(ctx context.Context, since, until time.Time) ([]domain.Ticket, error)

	// QueryTickets executes a filter expression against the backend.
	QueryTickets(ctx context.Context, filter domain.Filter, opts domain.QueryOptions) ([]domain.Ticket, error)

	// FetchUsers returns the id to display-name mapping for backend users.
	FetchUsers(ctx context.Context) (map[int64]string, error)

	// FetchPartners returns the id to display-name mapping for customers.
	FetchPartners(ctx context.Context) (map[int64]string, error)

	// FetchStages returns the ticket-workflow stages keyed by id.
	FetchStages(ctx context.Context) (map[int64]domain.StageInfo, error)
}
