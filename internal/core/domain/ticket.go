package domain

import "strconv"

// Display names substituted when a ticket reference cannot be resolved.
const (
	DefaultAssignee = "Unassigned"
	DefaultCustomer = "No Customer"
	DefaultProject  = "No Project"
	DefaultStage    = "Unknown"
)

// ReferenceKind discriminates the shapes a backend cross-reference can take.
type ReferenceKind int

const (
	// RefAbsent means the field was missing or falsy in the backend record.
	RefAbsent ReferenceKind = iota
	// RefID means the backend returned a bare numeric id.
	RefID
	// RefNamed means the backend returned an (id, name) pair.
	RefNamed
)

// Reference is a cross-reference to another backend entity. The ticket
// backend represents these ambiguously (absent, bare id, or id+name pair);
// Reference makes the variant explicit so resolution is total.
type Reference struct {
	Kind ReferenceKind `json:"kind"`
	ID   int64         `json:"id,omitempty"`
	Name string        `json:"name,omitempty"`
}

// NamedRef builds a reference carrying both id and display name.
func NamedRef(id int64, name string) Reference {
	return Reference{Kind: RefNamed, ID: id, Name: name}
}

// IDRef builds a reference carrying only a numeric id.
func IDRef(id int64) Reference {
	return Reference{Kind: RefID, ID: id}
}

// DisplayName resolves the reference to human-readable text. An absent
// reference resolves to the empty string, a bare id to its decimal form.
func (r Reference) DisplayName() string {
	switch r.Kind {
	case RefNamed:
		return r.Name
	case RefID:
		return strconv.FormatInt(r.ID, 10)
	default:
		return ""
	}
}

// OrDefault resolves the reference, substituting def when no name is
// available.
func (r Reference) OrDefault(def string) string {
	if name := r.DisplayName(); name != "" {
		return name
	}
	return def
}

// Ticket is a raw helpdesk ticket as returned by the ticket backend.
// Dates are backend-format strings ("2006-01-02 15:04:05"); an empty
// CloseDate means the ticket has not been closed.
type Ticket struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	CreateDate  string    `json:"create_date,omitempty"`
	WriteDate   string    `json:"write_date,omitempty"`
	CloseDate   string    `json:"close_date,omitempty"`
	Assignee    Reference `json:"user_id"`
	Customer    Reference `json:"partner_id"`
	Project     Reference `json:"project_id"`
	Stage       Reference `json:"stage_id"`
}

// StageInfo describes a ticket-workflow stage.
type StageInfo struct {
	Name     string `json:"name"`
	IsClosed bool   `json:"is_closed"`
	Sequence int    `json:"sequence"`
}

// EnrichedTicket is a ticket with its references resolved to display names
// and a derived closed/open flag. The stage-level closure flag takes
// priority, but a set close date alone also marks the ticket closed.
type EnrichedTicket struct {
	Ticket
	AssigneeName string `json:"user_name"`
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
	StageName    string `json:"stage_name"`
	IsClosed     bool   `json:"is_closed"`
}

// UserActivity aggregates the helpdesk tickets assigned to one user.
type UserActivity struct {
	UserName     string                      `json:"user_name"`
	Tickets      []EnrichedTicket            `json:"tickets_assigned"`
	Customers    []string                    `json:"customers"`
	Projects     []string                    `json:"projects"`
	ByCustomer   map[string][]EnrichedTicket `json:"by_customer"`
	ByProject    map[string][]EnrichedTicket `json:"by_project"`
	TotalTickets int                         `json:"total_tickets"`
	TotalOpen    int                         `json:"total_open"`
	TotalClosed  int                         `json:"total_closed"`
	ByPriority   map[string]int              `json:"by_priority"`
}
