package services

import (
	"sort"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// ActivityService aggregates raw collaboration events into per-developer
// summaries. It is a pure transformation: no I/O, no retained state.
type ActivityService struct{}

var _ ports.ActivityAggregator = (*ActivityService)(nil)

// NewActivityService creates a new activity aggregator.
func NewActivityService() *ActivityService {
	return &ActivityService{}
}

// developerBuilder accumulates one developer's activity before the result
// is finalized. Repos are collected as a set and sorted at the end.
type developerBuilder struct {
	activity *domain.DeveloperActivity
	repos    map[string]struct{}
}

type activityBuilders map[string]*developerBuilder

func (b activityBuilders) get(username string) *developerBuilder {
	db, ok := b[username]
	if !ok {
		db = &developerBuilder{
			activity: &domain.DeveloperActivity{
				Username: username,
				ByRepo:   make(map[string]*domain.RepoActivity),
			},
			repos: make(map[string]struct{}),
		}
		b[username] = db
	}
	return db
}

func (db *developerBuilder) repoBucket(repo string) *domain.RepoActivity {
	db.repos[repo] = struct{}{}
	bucket, ok := db.activity.ByRepo[repo]
	if !ok {
		bucket = &domain.RepoActivity{}
		db.activity.ByRepo[repo] = bucket
	}
	return bucket
}

// Aggregate walks every issue and pull request in the feed and attributes
// events to developers by role. A missing author never fails the
// aggregation; it is attributed to the ghost actor instead. When filterDevs
// is non-empty, only developers named in it appear in the result.
func (s *ActivityService) Aggregate(feed *domain.ActivityFeed, filterDevs map[string]struct{}) map[string]*domain.DeveloperActivity {
	builders := make(activityBuilders)

	pass := func(username string) bool {
		if len(filterDevs) == 0 {
			return true
		}
		_, ok := filterDevs[username]
		return ok
	}

	if feed != nil {
		for i := range feed.Issues {
			s.addIssue(builders, &feed.Issues[i], pass)
		}
		for i := range feed.PullRequests {
			s.addPullRequest(builders, &feed.PullRequests[i], pass)
		}
	}

	result := make(map[string]*domain.DeveloperActivity, len(builders))
	for username, db := range builders {
		db.activity.Repos = sortedKeys(db.repos)
		result[username] = db.activity
	}
	return result
}

func (s *ActivityService) addIssue(builders activityBuilders, issue *domain.Issue, pass func(string) bool) {
	repo := issue.Repository.NameWithOwner

	author := domain.AuthorName(issue.Author)
	if pass(author) {
		db := builders.get(author)
		db.activity.IssuesCreated = append(db.activity.IssuesCreated, issue)
		db.activity.TotalIssues++
		bucket := db.repoBucket(repo)
		bucket.IssuesCreated = append(bucket.IssuesCreated, issue)
	}

	// Comments are attributed independently of the author branch: the
	// issue author commenting on their own issue counts in both roles.
	for _, comment := range issue.Comments {
		commenter := domain.AuthorName(comment.Author)
		if !pass(commenter) {
			continue
		}
		link := domain.IssueComment{Issue: issue, Comment: comment}
		db := builders.get(commenter)
		db.activity.IssuesCommented = append(db.activity.IssuesCommented, link)
		db.activity.TotalComments++
		bucket := db.repoBucket(repo)
		bucket.IssuesCommented = append(bucket.IssuesCommented, link)
	}
}

func (s *ActivityService) addPullRequest(builders activityBuilders, pr *domain.PullRequest, pass func(string) bool) {
	repo := pr.Repository.NameWithOwner

	author := domain.AuthorName(pr.Author)
	if pass(author) {
		db := builders.get(author)
		db.activity.PRsCreated = append(db.activity.PRsCreated, pr)
		db.activity.TotalPRs++
		bucket := db.repoBucket(repo)
		bucket.PRsCreated = append(bucket.PRsCreated, pr)
	}

	for _, comment := range pr.Comments {
		commenter := domain.AuthorName(comment.Author)
		if !pass(commenter) {
			continue
		}
		link := domain.PullRequestComment{PullRequest: pr, Comment: comment}
		db := builders.get(commenter)
		db.activity.PRsCommented = append(db.activity.PRsCommented, link)
		db.activity.TotalComments++
		bucket := db.repoBucket(repo)
		bucket.PRsCommented = append(bucket.PRsCommented, link)
	}

	for _, review := range pr.Reviews {
		reviewer := domain.AuthorName(review.Author)
		if !pass(reviewer) {
			continue
		}
		link := domain.PullRequestReview{PullRequest: pr, Review: review}
		db := builders.get(reviewer)
		db.activity.PRsReviewed = append(db.activity.PRsReviewed, link)
		db.activity.TotalReviews++
		bucket := db.repoBucket(repo)
		bucket.PRsReviewed = append(bucket.PRsReviewed, link)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
