package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// priorityWords maps priority words to backend codes. Order matters:
// matching stops at the first word found, and "urgent" shadows "critical"
// in summaries (both collapse to the highest code).
var priorityWords = []struct {
	Word string
	Code string
}{
	{"low", "0"},
	{"medium", "1"},
	{"high", "2"},
	{"urgent", "3"},
	{"critical", "3"},
}

var (
	reMy         = regexp.MustCompile(`\bmy\b`)
	reOpen       = regexp.MustCompile(`\bopen\b`)
	reClosed     = regexp.MustCompile(`\bclosed\b`)
	reToday      = regexp.MustCompile(`\btoday\b`)
	reYesterday  = regexp.MustCompile(`\byesterday\b`)
	reThisWeek   = regexp.MustCompile(`\bthis\s+week\b`)
	reLastWeek   = regexp.MustCompile(`\blast\s+week\b`)
	reThisMonth  = regexp.MustCompile(`\bthis\s+month\b`)
	reLastNDays  = regexp.MustCompile(`\blast\s+(\d+)\s+days?\b`)
	reCustomer   = regexp.MustCompile(`(?:for|from|customer)\s+["']?([a-zA-Z0-9\s]+)["']?`)
	reProject    = regexp.MustCompile(`project\s+["']?([a-zA-Z0-9\s]+)["']?`)
	reLimit      = regexp.MustCompile(`\b(\d+)\s+(?:tickets?|results?)\b`)
	reAllTickets = regexp.MustCompile(`\ball\s+tickets?\b`)
)

// QueryService translates natural-language ticket queries into filter
// expressions the ticket backend can execute. Matching is case-insensitive
// over whole-word tokens; an unmatched pattern is never an error, the
// clause is simply omitted.
type QueryService struct {
	userID   int64
	username string
	now      func() time.Time
}

var _ ports.QueryTranslator = (*QueryService)(nil)

// NewQueryService creates a translator scoped to the authenticated backend
// user, who is the subject of "my" queries.
func NewQueryService(userID int64, username string) *QueryService {
	return &QueryService{
		userID:   userID,
		username: username,
		now:      time.Now,
	}
}

// Parse applies the fixed pattern precedence: ownership, priority, bare
// state, time window, customer, project, result cap, scope override, then
// the default filter when nothing matched.
func (s *QueryService) Parse(text string) (domain.Filter, domain.QueryOptions) {
	query := strings.ToLower(strings.TrimSpace(text))
	var filter domain.Filter
	opts := domain.DefaultQueryOptions()

	// 1. Ownership: "my [open|closed] tickets"
	if reMy.MatchString(query) {
		filter = append(filter, domain.Condition{Field: domain.FieldAssignee, Op: domain.OpEq, Value: s.userID})
		if reOpen.MatchString(query) {
			filter = append(filter, domain.Condition{Field: domain.FieldCloseDate, Op: domain.OpEq, Value: nil})
		} else if reClosed.MatchString(query) {
			filter = append(filter, domain.Condition{Field: domain.FieldCloseDate, Op: domain.OpNeq, Value: nil})
		}
	}

	// 2. Priority: first matching word wins.
	for _, p := range priorityWords {
		if matchWord(query, p.Word) {
			filter = append(filter, domain.Condition{Field: domain.FieldPriority, Op: domain.OpEq, Value: p.Code})
			break
		}
	}

	// 3. Bare state, unless ownership already emitted a close_date clause.
	if !filter.HasField(domain.FieldCloseDate) {
		if reOpen.MatchString(query) {
			filter = append(filter, domain.Condition{Field: domain.FieldCloseDate, Op: domain.OpEq, Value: nil})
		} else if reClosed.MatchString(query) {
			filter = append(filter, domain.Condition{Field: domain.FieldCloseDate, Op: domain.OpNeq, Value: nil})
		}
	}

	// 4. Time window.
	filter = append(filter, s.parseTimeFilter(query)...)

	// 5. Customer name, matched partially.
	if m := reCustomer.FindStringSubmatch(query); m != nil {
		filter = append(filter, domain.Condition{
			Field: domain.FieldCustomer,
			Op:    domain.OpILike,
			Value: strings.TrimSpace(m[1]),
		})
	}

	// 6. Project name.
	if m := reProject.FindStringSubmatch(query); m != nil {
		filter = append(filter, domain.Condition{
			Field: domain.FieldProject,
			Op:    domain.OpILike,
			Value: strings.TrimSpace(m[1]),
		})
	}

	// 7. Result cap.
	if m := reLimit.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			opts.Limit = min(n, domain.MaxQueryLimit)
		}
	}

	// 8. "all tickets" overrides the ownership scope unless "my" appears.
	if reAllTickets.MatchString(query) && !reMy.MatchString(query) {
		filter = filter.Without(domain.FieldAssignee)
	}

	// 9. Nothing matched: default to the current user's open tickets.
	if len(filter) == 0 {
		filter = domain.Filter{
			{Field: domain.FieldAssignee, Op: domain.OpEq, Value: s.userID},
			{Field: domain.FieldCloseDate, Op: domain.OpEq, Value: nil},
		}
	}

	return filter, opts
}

// parseTimeFilter emits write_date bounds for the first matching time
// pattern, evaluated in a fixed order.
func (s *QueryService) parseTimeFilter(query string) domain.Filter {
	today := domain.DayStart(s.now())
	date := func(t time.Time) string { return t.Format(domain.DateOnly) }

	switch {
	case reToday.MatchString(query):
		return domain.Filter{{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(today)}}

	case reYesterday.MatchString(query):
		return domain.Filter{
			{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(today.AddDate(0, 0, -1))},
			{Field: domain.FieldWriteDate, Op: domain.OpLt, Value: date(today)},
		}

	case reThisWeek.MatchString(query):
		return domain.Filter{{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(domain.WeekStart(today))}}

	case reLastWeek.MatchString(query):
		endOfLastWeek := domain.WeekStart(today)
		return domain.Filter{
			{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(endOfLastWeek.AddDate(0, 0, -7))},
			{Field: domain.FieldWriteDate, Op: domain.OpLt, Value: date(endOfLastWeek)},
		}

	case reThisMonth.MatchString(query):
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return domain.Filter{{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(first)}}

	default:
		if m := reLastNDays.FindStringSubmatch(query); m != nil {
			if days, err := strconv.Atoi(m[1]); err == nil {
				return domain.Filter{{Field: domain.FieldWriteDate, Op: domain.OpGte, Value: date(today.AddDate(0, 0, -days))}}
			}
		}
		return nil
	}
}

// Summary reconstructs a human-readable sentence from the filter, clause
// by clause in a fixed order, appending the limit only when it is below
// the hard ceiling.
func (s *QueryService) Summary(filter domain.Filter, opts domain.QueryOptions) string {
	var parts []string

	if filter.HasField(domain.FieldAssignee) {
		parts = append(parts, "your")
	} else {
		parts = append(parts, "all")
	}

	if c, ok := filter.First(domain.FieldCloseDate); ok {
		switch c.Op {
		case domain.OpEq:
			parts = append(parts, "open")
		case domain.OpNeq:
			parts = append(parts, "closed")
		}
	}

	if c, ok := filter.First(domain.FieldPriority); ok {
		for _, p := range priorityWords {
			if p.Code == c.Value {
				parts = append(parts, p.Word+" priority")
				break
			}
		}
	}

	parts = append(parts, "tickets")

	for _, c := range filter {
		if c.Field == domain.FieldCustomer && c.Op == domain.OpILike {
			parts = append(parts, fmt.Sprintf("for customer matching '%v'", c.Value))
		}
	}

	for _, c := range filter {
		if c.Field == domain.FieldWriteDate && c.Op == domain.OpGte {
			parts = append(parts, fmt.Sprintf("since %v", c.Value))
			break
		}
	}

	result := strings.Join(parts, " ")
	if opts.Limit < domain.MaxQueryLimit {
		result += fmt.Sprintf(" (limit: %d)", opts.Limit)
	}
	return capitalize(result)
}

func matchWord(query, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(query)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
