package domain

// Operator is a comparison operator in a ticket filter condition.
type Operator string

const (
	OpEq    Operator = "="
	OpNeq   Operator = "!="
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpIn    Operator = "in"
	OpILike Operator = "ilike"
)

// Ticket backend field names used in filter conditions.
const (
	FieldAssignee  = "user_id"
	FieldCloseDate = "close_date"
	FieldPriority  = "priority"
	FieldWriteDate = "write_date"
	FieldCustomer  = "partner_id.name"
	FieldProject   = "project_id.name"
)

// Condition is one (field, operator, value) triple. A nil Value on a
// close_date condition means "not set" and is translated by the backend
// adapter into its falsy wire form.
type Condition struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value any      `json:"value"`
}

// Filter is an ordered conjunction of conditions. Order only matters for
// human-readable summaries; the backend treats the conditions as a
// logical AND.
type Filter []Condition

// HasField reports whether any condition references the given field.
func (f Filter) HasField(field string) bool {
	for _, c := range f {
		if c.Field == field {
			return true
		}
	}
	return false
}

// First returns the first condition for the given field.
func (f Filter) First(field string) (Condition, bool) {
	for _, c := range f {
		if c.Field == field {
			return c, true
		}
	}
	return Condition{}, false
}

// Without returns a copy of the filter with all conditions on the given
// field removed.
func (f Filter) Without(field string) Filter {
	out := make(Filter, 0, len(f))
	for _, c := range f {
		if c.Field != field {
			out = append(out, c)
		}
	}
	return out
}

// Query option defaults and limits.
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 100
	DefaultQueryOrder = "write_date desc"
)

// DefaultTicketFields is the field set requested from the ticket backend
// when the caller does not override it.
var DefaultTicketFields = []string{
	"id", "name", "user_id", "partner_id", "project_id",
	"stage_id", "priority", "create_date", "write_date",
	"close_date", "description",
}

// QueryOptions carries the non-filter parts of a ticket query.
type QueryOptions struct {
	Limit  int      `json:"limit"`
	Order  string   `json:"order"`
	Fields []string `json:"fields"`
}

// DefaultQueryOptions returns the options applied when the query text does
// not specify any.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:  DefaultQueryLimit,
		Order:  DefaultQueryOrder,
		Fields: DefaultTicketFields,
	}
}
