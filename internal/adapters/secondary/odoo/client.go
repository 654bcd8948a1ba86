package odoo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kolo/xmlrpc"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	apperrors "github.com/euroblaze/ear-backend/internal/core/errors"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// fetchLimit caps how many tickets one report fetch may return.
const fetchLimit = 1000

// ticketModel and friends are the backend model names.
const (
	ticketModel  = "helpdesk.ticket"
	userModel    = "res.users"
	partnerModel = "res.partner"
	stageModel   = "helpdesk.stage"
)

// Config holds the backend connection parameters.
type Config struct {
	URL      string
	DB       string
	Username string
	Password string
}

// Client talks to the Odoo helpdesk over XML-RPC. Authenticate must be
// called before any other operation.
type Client struct {
	cfg    Config
	common *xmlrpc.Client
	object *xmlrpc.Client
	uid    int64
	logger *slog.Logger
}

var _ ports.TicketBackend = (*Client)(nil)

// NewClient creates a backend client for the given server.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.URL, "/")

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("create object endpoint client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		common: common,
		object: object,
		logger: logger.With("adapter", "odoo"),
	}, nil
}

// Authenticate logs in and stores the backend user id used by all
// subsequent calls.
func (c *Client) Authenticate(ctx context.Context) error {
	var reply any
	err := c.common.Call("authenticate", []any{
		c.cfg.DB, c.cfg.Username, c.cfg.Password, map[string]any{},
	}, &reply)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}

	uid, ok := asInt(reply)
	if !ok || uid == 0 {
		return apperrors.ErrAuthFailed
	}

	c.uid = uid
	c.logger.Info("authenticated with ticket backend", "user", c.cfg.Username, "uid", uid)
	return nil
}

// CurrentUserID returns the authenticated backend user id, or zero before
// Authenticate succeeds.
func (c *Client) CurrentUserID() int64 {
	return c.uid
}

// Ping verifies the backend answers on its version endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var reply any
	if err := c.common.Call("version", []any{}, &reply); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	return nil
}

// executeKw invokes a model method through the generic execute_kw entry
// point.
func (c *Client) executeKw(model, method string, args []any, kwargs map[string]any, reply any) error {
	if c.uid == 0 {
		return apperrors.ErrNotAuthenticated
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	err := c.object.Call("execute_kw", []any{
		c.cfg.DB, c.uid, c.cfg.Password, model, method, args, kwargs,
	}, reply)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", model, method, err)
	}
	return nil
}

// searchRead is a thin wrapper over the backend's search_read method.
func (c *Client) searchRead(model string, filter []any, kwargs map[string]any) ([]map[string]any, error) {
	var reply []map[string]any
	if err := c.executeKw(model, "search_read", []any{filter}, kwargs, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// FetchTickets returns tickets written within the inclusive date window,
// most recently written first.
func (c *Client) FetchTickets(ctx context.Context, since, until time.Time) ([]domain.Ticket, error) {
	filter := []any{
		[]any{"write_date", ">=", since.Format(domain.DateOnly)},
		[]any{"write_date", "<=", until.Format(domain.DateOnly) + " 23:59:59"},
	}

	records, err := c.searchRead(ticketModel, filter, map[string]any{
		"fields": domain.DefaultTicketFields,
		"limit":  fetchLimit,
		"order":  domain.DefaultQueryOrder,
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched tickets",
		"since", since.Format(domain.DateOnly),
		"until", until.Format(domain.DateOnly),
		"count", len(records),
	)
	return decodeTickets(records), nil
}

// QueryTickets executes a translated filter expression.
func (c *Client) QueryTickets(ctx context.Context, filter domain.Filter, opts domain.QueryOptions) ([]domain.Ticket, error) {
	records, err := c.searchRead(ticketModel, encodeFilter(filter), encodeOptions(opts))
	if err != nil {
		return nil, err
	}
	return decodeTickets(records), nil
}

// FetchUsers returns all backend users keyed by id.
func (c *Client) FetchUsers(ctx context.Context) (map[int64]string, error) {
	return c.fetchNames(userModel)
}

// FetchPartners returns all customers keyed by id.
func (c *Client) FetchPartners(ctx context.Context) (map[int64]string, error) {
	return c.fetchNames(partnerModel)
}

func (c *Client) fetchNames(model string) (map[int64]string, error) {
	records, err := c.searchRead(model, []any{}, map[string]any{
		"fields": []string{"id", "name"},
	})
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(records))
	for _, rec := range records {
		if id, ok := asInt(rec["id"]); ok {
			names[id] = asString(rec["name"])
		}
	}
	return names, nil
}

// FetchStages returns the ticket-workflow stages. The backend's "fold"
// flag marks a stage as closed.
func (c *Client) FetchStages(ctx context.Context) (map[int64]domain.StageInfo, error) {
	records, err := c.searchRead(stageModel, []any{}, map[string]any{
		"fields": []string{"id", "name", "fold", "sequence"},
	})
	if err != nil {
		return nil, err
	}

	stages := make(map[int64]domain.StageInfo, len(records))
	for _, rec := range records {
		id, ok := asInt(rec["id"])
		if !ok {
			continue
		}
		seq, _ := asInt(rec["sequence"])
		stages[id] = domain.StageInfo{
			Name:     asString(rec["name"]),
			IsClosed: asBool(rec["fold"]),
			Sequence: int(seq),
		}
	}
	return stages, nil
}
