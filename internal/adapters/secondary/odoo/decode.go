package odoo

import (
	"fmt"

	"github.com/euroblaze/ear-backend/internal/core/domain"
)

// The backend serializes many-to-one fields ambiguously: an [id, name]
// array, a bare id, or boolean false when the field is unset. Empty text
// fields likewise arrive as false rather than "".

// decodeReference maps a wire value onto the tagged reference variant.
// Any shape other than pair/scalar is treated as absent.
func decodeReference(v any) domain.Reference {
	switch val := v.(type) {
	case []any:
		if len(val) >= 2 {
			if id, ok := asInt(val[0]); ok {
				return domain.NamedRef(id, asString(val[1]))
			}
		}
		return domain.Reference{}
	case string:
		// A bare display string without an id.
		if val != "" {
			return domain.Reference{Kind: domain.RefNamed, Name: val}
		}
		return domain.Reference{}
	default:
		if id, ok := asInt(v); ok && id != 0 {
			return domain.IDRef(id)
		}
		return domain.Reference{}
	}
}

func decodeTicket(rec map[string]any) domain.Ticket {
	id, _ := asInt(rec["id"])

	name := asString(rec["name"])
	if name == "" {
		name = "Untitled Ticket"
	}

	priority := asString(rec["priority"])
	if priority == "" {
		priority = "0"
	}

	return domain.Ticket{
		ID:          id,
		Name:        name,
		Description: asString(rec["description"]),
		Priority:    priority,
		CreateDate:  asString(rec["create_date"]),
		WriteDate:   asString(rec["write_date"]),
		CloseDate:   asString(rec["close_date"]),
		Assignee:    decodeReference(rec["user_id"]),
		Customer:    decodeReference(rec["partner_id"]),
		Project:     decodeReference(rec["project_id"]),
		Stage:       decodeReference(rec["stage_id"]),
	}
}

func decodeTickets(records []map[string]any) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(records))
	for _, rec := range records {
		tickets = append(tickets, decodeTicket(rec))
	}
	return tickets
}

// encodeFilter translates a filter expression into the backend's domain
// triple form. A nil value means "not set" and is encoded as false.
func encodeFilter(filter domain.Filter) []any {
	encoded := make([]any, 0, len(filter))
	for _, c := range filter {
		value := c.Value
		if value == nil {
			value = false
		}
		encoded = append(encoded, []any{c.Field, string(c.Op), value})
	}
	return encoded
}

// encodeOptions translates query options into search_read kwargs, clamping
// the limit to the hard ceiling.
func encodeOptions(opts domain.QueryOptions) map[string]any {
	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultQueryLimit
	}
	if limit > domain.MaxQueryLimit {
		limit = domain.MaxQueryLimit
	}

	order := opts.Order
	if order == "" {
		order = domain.DefaultQueryOrder
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = domain.DefaultTicketFields
	}

	return map[string]any{
		"fields": fields,
		"limit":  limit,
		"order":  order,
	}
}

// asString coerces a wire value to text. Boolean false (the backend's
// empty marker) and nil both decode to "".
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil, bool:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func asInt(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case float64:
		return int64(val), true
	default:
		return 0, false
	}
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
