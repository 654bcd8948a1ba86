package mocks

import (
	"context"
	"time"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockActivitySource is a mock implementation of ports.ActivitySource
type MockActivitySource struct {
	mock.Mock
}

func NewMockActivitySource() *MockActivitySource {
	return &MockActivitySource{}
}

func (m *MockActivitySource) FetchRecentActivity(ctx context.Context, orgs []string, since time.Time) (*domain.ActivityFeed, error) {
	args := m.Called(ctx, orgs, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityFeed), args.Error(1)
}

// MockTicketBackend is a mock implementation of ports.TicketBackend
type MockTicketBackend struct {
	mock.Mock
}

func NewMockTicketBackend() *MockTicketBackend {
	return &MockTicketBackend{}
}

func (m *MockTicketBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketBackend) CurrentUserID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockTicketBackend) FetchTickets(ctx context.Context, since, until time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketBackend) QueryTickets(ctx context.Context, filter domain.Filter, opts domain.QueryOptions) ([]domain.Ticket, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketBackend) FetchUsers(ctx context.Context) (map[int64]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockTicketBackend) FetchPartners(ctx context.Context) (map[int64]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockTicketBackend) FetchStages(ctx context.Context) (map[int64]domain.StageInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.StageInfo), args.Error(1)
}
