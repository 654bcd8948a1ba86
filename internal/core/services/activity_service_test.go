package services_test

import (
	"testing"
	"time"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/euroblaze/ear-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(login string) *domain.Actor {
	return &domain.Actor{Login: login}
}

func sampleFeed() *domain.ActivityFeed {
	created := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

	return &domain.ActivityFeed{
		Issues: []domain.Issue{
			{
				Number:     12,
				Title:      "Importer drops empty rows",
				Repository: domain.Repository{NameWithOwner: "euroblaze/importer"},
				Author:     actor("alice"),
				CreatedAt:  created,
				Comments: []domain.Comment{
					{Author: actor("bob"), CreatedAt: created, Body: "Reproduced on staging"},
					{Author: actor("alice"), CreatedAt: created, Body: "Fix incoming"},
				},
			},
			{
				Number:     13,
				Title:      "Anonymous report",
				Repository: domain.Repository{NameWithOwner: "euroblaze/importer"},
				Author:     nil,
			},
		},
		PullRequests: []domain.PullRequest{
			{
				Number:     40,
				Title:      "Skip empty rows",
				Repository: domain.Repository{NameWithOwner: "euroblaze/importer"},
				Author:     actor("alice"),
				Comments: []domain.Comment{
					{Author: actor("bob"), Body: "LGTM after tests"},
				},
				Reviews: []domain.Review{
					{Author: actor("bob"), State: "APPROVED"},
					{Author: nil, State: "COMMENTED"},
				},
			},
			{
				Number:     41,
				Title:      "Bump parser",
				Repository: domain.Repository{NameWithOwner: "wapsol/parser"},
				Author:     actor("bob"),
			},
		},
	}
}

func TestActivityService_Aggregate(t *testing.T) {
	svc := services.NewActivityService()

	t.Run("attributes events by role", func(t *testing.T) {
		result := svc.Aggregate(sampleFeed(), nil)

		require.Contains(t, result, "alice")
		require.Contains(t, result, "bob")
		require.Contains(t, result, domain.GhostActor)

		alice := result["alice"]
		assert.Equal(t, 1, alice.TotalIssues)
		assert.Equal(t, 1, alice.TotalPRs)
		// Alice commented on her own issue; the author branch and the
		// comment branch count independently.
		assert.Equal(t, 1, alice.TotalComments)
		assert.Equal(t, 0, alice.TotalReviews)

		bob := result["bob"]
		assert.Equal(t, 0, bob.TotalIssues)
		assert.Equal(t, 1, bob.TotalPRs)
		assert.Equal(t, 2, bob.TotalComments)
		assert.Equal(t, 1, bob.TotalReviews)
	})

	t.Run("missing authors collapse onto the ghost actor", func(t *testing.T) {
		result := svc.Aggregate(sampleFeed(), nil)

		ghost := result[domain.GhostActor]
		require.NotNil(t, ghost)
		assert.Equal(t, 1, ghost.TotalIssues)
		assert.Equal(t, 1, ghost.TotalReviews)
	})

	t.Run("counters match their event lists", func(t *testing.T) {
		result := svc.Aggregate(sampleFeed(), nil)

		for username, a := range result {
			assert.Len(t, a.IssuesCreated, a.TotalIssues, username)
			assert.Len(t, a.PRsCreated, a.TotalPRs, username)
			assert.Len(t, a.PRsReviewed, a.TotalReviews, username)
			assert.Equal(t, a.TotalComments, len(a.IssuesCommented)+len(a.PRsCommented), username)
		}
	})

	t.Run("repo set is the sorted union of touched repositories", func(t *testing.T) {
		result := svc.Aggregate(sampleFeed(), nil)

		bob := result["bob"]
		assert.Equal(t, []string{"euroblaze/importer", "wapsol/parser"}, bob.Repos)

		for username, a := range result {
			assert.Len(t, a.ByRepo, len(a.Repos), username)
			for _, repo := range a.Repos {
				assert.Contains(t, a.ByRepo, repo, username)
			}
		}
	})

	t.Run("filter restricts the result to named developers", func(t *testing.T) {
		filter := map[string]struct{}{"bob": {}}
		result := svc.Aggregate(sampleFeed(), filter)

		require.Len(t, result, 1)
		require.Contains(t, result, "bob")

		// Counters are identical to the unfiltered run.
		full := svc.Aggregate(sampleFeed(), nil)
		assert.Equal(t, full["bob"], result["bob"])
	})

	t.Run("filter naming an inactive developer yields nothing for them", func(t *testing.T) {
		filter := map[string]struct{}{"mallory": {}}
		result := svc.Aggregate(sampleFeed(), filter)
		assert.Empty(t, result)
	})

	t.Run("nil feed aggregates to an empty result", func(t *testing.T) {
		result := svc.Aggregate(nil, nil)
		assert.Empty(t, result)
	})

	t.Run("aggregation is idempotent over the same feed", func(t *testing.T) {
		first := svc.Aggregate(sampleFeed(), nil)
		second := svc.Aggregate(sampleFeed(), nil)
		assert.Equal(t, first, second)
	})
}
