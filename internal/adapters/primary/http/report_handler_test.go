package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	apperrors "github.com/euroblaze/ear-backend/internal/core/errors"
	"github.com/euroblaze/ear-backend/internal/core/mocks"
	"github.com/euroblaze/ear-backend/internal/core/services"
)

func newReportHandler(source *mocks.MockActivitySource, backend *mocks.MockTicketBackend, defaultOrgs []string) *ReportHandler {
	logger := testLogger()
	return NewReportHandler(
		source,
		backend,
		services.NewActivityService(),
		services.NewTicketService(backend, logger),
		defaultOrgs,
		"lastweek",
		NewErrorHandler(logger),
		logger,
	)
}

func TestReportHandler_HandleActivityReport(t *testing.T) {
	feed := &domain.ActivityFeed{
		Issues: []domain.Issue{
			{
				Number:     1,
				Title:      "Broken import",
				Repository: domain.Repository{NameWithOwner: "euroblaze/importer"},
				Author:     &domain.Actor{Login: "alice"},
			},
		},
	}

	t.Run("aggregates the fetched feed", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		source.On("FetchRecentActivity", mock.Anything, []string{"euroblaze", "wapsol"}, mock.Anything).
			Return(feed, nil)

		handler := newReportHandler(source, mocks.NewMockTicketBackend(), []string{"euroblaze", "wapsol"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity?period=7d", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)

		var resp ActivityReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.True(t, resp.Success)
		assert.Equal(t, "7d", resp.Period.Code)
		assert.Equal(t, "Past 7 Days", resp.Period.Label)
		require.Contains(t, resp.Developers, "alice")
		assert.Equal(t, 1, resp.Developers["alice"].TotalIssues)

		source.AssertExpectations(t)
	})

	t.Run("orgs parameter overrides the configured default", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		source.On("FetchRecentActivity", mock.Anything, []string{"acme"}, mock.Anything).
			Return(&domain.ActivityFeed{}, nil)

		handler := newReportHandler(source, mocks.NewMockTicketBackend(), []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity?orgs=acme", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		assert.Equal(t, stdhttp.StatusOK, rec.Code)
		source.AssertExpectations(t)
	})

	t.Run("devs parameter filters the result", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		source.On("FetchRecentActivity", mock.Anything, mock.Anything, mock.Anything).
			Return(feed, nil)

		handler := newReportHandler(source, mocks.NewMockTicketBackend(), []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity?devs=bob", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)

		var resp ActivityReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Developers)
	})

	t.Run("unknown period is rejected", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		handler := newReportHandler(source, mocks.NewMockTicketBackend(), []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity?period=fortnight", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
		source.AssertNotCalled(t, "FetchRecentActivity")
	})

	t.Run("no orgs anywhere is rejected", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		handler := newReportHandler(source, mocks.NewMockTicketBackend(), nil)

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})

	t.Run("source failure maps to bad gateway", func(t *testing.T) {
		source := mocks.NewMockActivitySource()
		source.On("FetchRecentActivity", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrActivityFetchFailed)

		handler := newReportHandler(source, mocks.NewMockTicketBackend(), []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/activity", nil)
		rec := httptest.NewRecorder()
		handler.HandleActivityReport(rec, req)

		assert.Equal(t, stdhttp.StatusBadGateway, rec.Code)
	})
}

func TestReportHandler_HandleTicketReport(t *testing.T) {
	tickets := []domain.Ticket{
		{
			ID:       1,
			Name:     "VPN drops",
			Priority: "1",
			Assignee: domain.NamedRef(7, "Alice Weber"),
			Stage:    domain.NamedRef(1, "New"),
		},
		{
			ID:        2,
			Name:      "Password reset",
			Priority:  "0",
			Assignee:  domain.NamedRef(9, "Bruno Keller"),
			Stage:     domain.NamedRef(5, "Resolved"),
			CloseDate: "2025-06-12 09:00:00",
		},
	}

	t.Run("aggregates tickets by assignee", func(t *testing.T) {
		backend := mocks.NewMockTicketBackend()
		backend.On("FetchTickets", mock.Anything, mock.Anything, mock.Anything).
			Return(tickets, nil)

		handler := newReportHandler(mocks.NewMockActivitySource(), backend, []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/tickets?period=month", nil)
		rec := httptest.NewRecorder()
		handler.HandleTicketReport(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)

		var resp TicketReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.True(t, resp.Success)
		assert.Equal(t, "month", resp.Period.Code)
		require.Len(t, resp.Users, 2)
		assert.Equal(t, 1, resp.Users["Alice Weber"].TotalOpen)
		assert.Equal(t, 1, resp.Users["Bruno Keller"].TotalClosed)

		backend.AssertExpectations(t)
	})

	t.Run("users parameter filters the result", func(t *testing.T) {
		backend := mocks.NewMockTicketBackend()
		backend.On("FetchTickets", mock.Anything, mock.Anything, mock.Anything).
			Return(tickets, nil)

		handler := newReportHandler(mocks.NewMockActivitySource(), backend, []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/tickets?users=Alice+Weber", nil)
		rec := httptest.NewRecorder()
		handler.HandleTicketReport(rec, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)

		var resp TicketReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 1)
		assert.Contains(t, resp.Users, "Alice Weber")
	})

	t.Run("backend failure maps to bad gateway", func(t *testing.T) {
		backend := mocks.NewMockTicketBackend()
		backend.On("FetchTickets", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrBackendUnavailable)

		handler := newReportHandler(mocks.NewMockActivitySource(), backend, []string{"euroblaze"})

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reports/tickets", nil)
		rec := httptest.NewRecorder()
		handler.HandleTicketReport(rec, req)

		assert.Equal(t, stdhttp.StatusBadGateway, rec.Code)
	})
}
