package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// TicketService enriches raw helpdesk tickets and aggregates them by
// assignee. Lookup caches are populated once by WarmCaches and never
// invalidated; construct a new service to pick up backend-side renames.
// The caches are not safe for concurrent mutation - warm them before
// sharing the service across goroutines.
type TicketService struct {
	backend ports.TicketBackend
	logger  *slog.Logger

	users    map[int64]string
	partners map[int64]string
	stages   map[int64]domain.StageInfo
}

var _ ports.TicketAggregator = (*TicketService)(nil)

// NewTicketService creates a new ticket aggregator backed by the given
// ticket backend for reference lookups.
func NewTicketService(backend ports.TicketBackend, logger *slog.Logger) *TicketService {
	return &TicketService{
		backend: backend,
		logger:  logger.With("service", "tickets"),
	}
}

// WarmCaches populates the user, partner and stage caches. Any lookup
// failure is returned to the caller; a caller that chooses to proceed
// anyway gets enrichment with default display names and open stages.
func (s *TicketService) WarmCaches(ctx context.Context) error {
	users, err := s.backend.FetchUsers(ctx)
	if err != nil {
		return fmt.Errorf("warm user cache: %w", err)
	}
	partners, err := s.backend.FetchPartners(ctx)
	if err != nil {
		return fmt.Errorf("warm partner cache: %w", err)
	}
	stages, err := s.backend.FetchStages(ctx)
	if err != nil {
		return fmt.Errorf("warm stage cache: %w", err)
	}

	s.users = users
	s.partners = partners
	s.stages = stages

	s.logger.Info("reference caches warmed",
		"users", len(users),
		"partners", len(partners),
		"stages", len(stages),
	)
	return nil
}

// Enrich resolves the ticket's references to display names and derives the
// closed flag. Resolution never fails: unknown references degrade to the
// sentinel defaults.
func (s *TicketService) Enrich(t domain.Ticket) domain.EnrichedTicket {
	stageName, stageClosed := s.resolveStage(t.Stage)

	return domain.EnrichedTicket{
		Ticket:       t,
		AssigneeName: s.resolveName(t.Assignee, s.users, domain.DefaultAssignee),
		CustomerName: s.resolveName(t.Customer, s.partners, domain.DefaultCustomer),
		ProjectName:  t.Project.OrDefault(domain.DefaultProject),
		StageName:    stageName,
		IsClosed:     stageClosed || t.CloseDate != "",
	}
}

// EnrichAll enriches every ticket, preserving input order.
func (s *TicketService) EnrichAll(tickets []domain.Ticket) []domain.EnrichedTicket {
	enriched := make([]domain.EnrichedTicket, len(tickets))
	for i, t := range tickets {
		enriched[i] = s.Enrich(t)
	}
	return enriched
}

// resolveName resolves a reference, consulting the warmed cache when the
// backend returned only a bare id.
func (s *TicketService) resolveName(ref domain.Reference, cache map[int64]string, def string) string {
	if ref.Kind == domain.RefID {
		if name, ok := cache[ref.ID]; ok {
			return name
		}
	}
	return ref.OrDefault(def)
}

// resolveStage returns the stage display name and closure flag. The warmed
// stage cache wins over the name carried on the reference; an unknown
// stage is treated as open. A bare id that misses the cache carries no
// usable name, so it resolves to the default stage.
func (s *TicketService) resolveStage(ref domain.Reference) (string, bool) {
	if ref.Kind != domain.RefAbsent {
		if info, ok := s.stages[ref.ID]; ok {
			return info.Name, info.IsClosed
		}
	}
	if ref.Kind == domain.RefNamed {
		return ref.Name, false
	}
	return domain.DefaultStage, false
}

// userBuilder accumulates one assignee's summary before finalization.
type userBuilder struct {
	activity  *domain.UserActivity
	customers map[string]struct{}
	projects  map[string]struct{}
}

// Aggregate enriches every ticket and groups the results by resolved
// assignee name. Enrichment runs unconditionally; the user filter only
// decides which enriched tickets are retained.
func (s *TicketService) Aggregate(tickets []domain.Ticket, filterUsers map[string]struct{}) map[string]*domain.UserActivity {
	builders := make(map[string]*userBuilder)

	for _, enriched := range s.EnrichAll(tickets) {
		userName := enriched.AssigneeName
		if len(filterUsers) > 0 {
			if _, ok := filterUsers[userName]; !ok {
				continue
			}
		}

		ub, ok := builders[userName]
		if !ok {
			ub = &userBuilder{
				activity: &domain.UserActivity{
					UserName:   userName,
					ByCustomer: make(map[string][]domain.EnrichedTicket),
					ByProject:  make(map[string][]domain.EnrichedTicket),
					ByPriority: make(map[string]int),
				},
				customers: make(map[string]struct{}),
				projects:  make(map[string]struct{}),
			}
			builders[userName] = ub
		}

		a := ub.activity
		a.Tickets = append(a.Tickets, enriched)
		ub.customers[enriched.CustomerName] = struct{}{}
		ub.projects[enriched.ProjectName] = struct{}{}
		a.ByCustomer[enriched.CustomerName] = append(a.ByCustomer[enriched.CustomerName], enriched)
		a.ByProject[enriched.ProjectName] = append(a.ByProject[enriched.ProjectName], enriched)
		a.TotalTickets++
		if enriched.IsClosed {
			a.TotalClosed++
		} else {
			a.TotalOpen++
		}
		// Histogram is keyed by the raw priority code, not the word.
		a.ByPriority[priorityKey(enriched.Priority)]++
	}

	result := make(map[string]*domain.UserActivity, len(builders))
	for userName, ub := range builders {
		ub.activity.Customers = sortedKeys(ub.customers)
		ub.activity.Projects = sortedKeys(ub.projects)
		result[userName] = ub.activity
	}
	return result
}

func priorityKey(priority string) string {
	if priority == "" {
		return "0"
	}
	return priority
}
