package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/euroblaze/ear-backend/internal/core/domain"
	"github.com/euroblaze/ear-backend/internal/core/ports"
)

// Client fetches recent collaboration activity through the GitHub GraphQL
// search API. Only the first page of each search is requested; the report
// window keeps result volumes small.
type Client struct {
	gql *githubv4.Client
}

var _ ports.ActivitySource = (*Client)(nil)

// NewClient creates a GraphQL client authenticated with the given token.
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{gql: githubv4.NewClient(httpClient)}
}

// actor represents a GitHub user in GraphQL. A deleted account comes back
// as a null author, which decodes to an empty login.
type actor struct {
	Login githubv4.String
}

type commentNode struct {
	Author    actor
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	URL       githubv4.URI
	Body      githubv4.String
}

type reviewNode struct {
	Author    actor
	CreatedAt githubv4.DateTime
	State     githubv4.String
}

type issueNode struct {
	Number     githubv4.Int
	Title      githubv4.String
	URL        githubv4.URI
	CreatedAt  githubv4.DateTime
	UpdatedAt  githubv4.DateTime
	State      githubv4.String
	Body       githubv4.String
	Repository struct {
		NameWithOwner githubv4.String
	}
	Author   actor
	Comments struct {
		TotalCount githubv4.Int
		Nodes      []commentNode
	} `graphql:"comments(first: 50)"`
}

type pullRequestNode struct {
	Number     githubv4.Int
	Title      githubv4.String
	URL        githubv4.URI
	CreatedAt  githubv4.DateTime
	UpdatedAt  githubv4.DateTime
	MergedAt   *githubv4.DateTime
	ClosedAt   *githubv4.DateTime
	State      githubv4.String
	Body       githubv4.String
	Repository struct {
		NameWithOwner githubv4.String
	}
	Author   actor
	Comments struct {
		TotalCount githubv4.Int
		Nodes      []commentNode
	} `graphql:"comments(first: 50)"`
	Reviews struct {
		TotalCount githubv4.Int
		Nodes      []reviewNode
	} `graphql:"reviews(first: 50)"`
}

type issueSearchQuery struct {
	Search struct {
		IssueCount githubv4.Int
		Nodes      []struct {
			Issue issueNode `graphql:"... on Issue"`
		}
	} `graphql:"search(query: $searchQuery, type: ISSUE, first: 100)"`
}

type prSearchQuery struct {
	Search struct {
		IssueCount githubv4.Int
		Nodes      []struct {
			PullRequest pullRequestNode `graphql:"... on PullRequest"`
		}
	} `graphql:"search(query: $searchQuery, type: ISSUE, first: 100)"`
}

// FetchRecentActivity runs one issue search and one pull request search
// over the given organizations and maps the results into the domain feed.
func (c *Client) FetchRecentActivity(ctx context.Context, orgs []string, since time.Time) (*domain.ActivityFeed, error) {
	orgQuery := make([]string, 0, len(orgs))
	for _, org := range orgs {
		orgQuery = append(orgQuery, "org:"+org)
	}
	scope := strings.Join(orgQuery, " ")
	sinceDate := since.Format(domain.DateOnly)

	var issuesQ issueSearchQuery
	issueSearch := fmt.Sprintf("%s is:issue updated:>=%s", scope, sinceDate)
	if err := c.gql.Query(ctx, &issuesQ, map[string]interface{}{
		"searchQuery": githubv4.String(issueSearch),
	}); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	var prsQ prSearchQuery
	prSearch := fmt.Sprintf("%s is:pr updated:>=%s", scope, sinceDate)
	if err := c.gql.Query(ctx, &prsQ, map[string]interface{}{
		"searchQuery": githubv4.String(prSearch),
	}); err != nil {
		return nil, fmt.Errorf("search pull requests: %w", err)
	}

	feed := &domain.ActivityFeed{}
	for _, node := range issuesQ.Search.Nodes {
		feed.Issues = append(feed.Issues, convertIssue(node.Issue))
	}
	for _, node := range prsQ.Search.Nodes {
		feed.PullRequests = append(feed.PullRequests, convertPullRequest(node.PullRequest))
	}
	return feed, nil
}

func convertActor(a actor) *domain.Actor {
	if a.Login == "" {
		return nil
	}
	return &domain.Actor{Login: string(a.Login)}
}

func convertComments(nodes []commentNode) []domain.Comment {
	comments := make([]domain.Comment, 0, len(nodes))
	for _, n := range nodes {
		comments = append(comments, domain.Comment{
			Author:    convertActor(n.Author),
			CreatedAt: n.CreatedAt.Time,
			UpdatedAt: n.UpdatedAt.Time,
			URL:       n.URL.String(),
			Body:      string(n.Body),
		})
	}
	return comments
}

func convertIssue(n issueNode) domain.Issue {
	return domain.Issue{
		Number:     int(n.Number),
		Title:      string(n.Title),
		URL:        n.URL.String(),
		CreatedAt:  n.CreatedAt.Time,
		UpdatedAt:  n.UpdatedAt.Time,
		State:      string(n.State),
		Body:       string(n.Body),
		Repository: domain.Repository{NameWithOwner: string(n.Repository.NameWithOwner)},
		Author:     convertActor(n.Author),
		Comments:   convertComments(n.Comments.Nodes),
	}
}

func convertPullRequest(n pullRequestNode) domain.PullRequest {
	pr := domain.PullRequest{
		Number:     int(n.Number),
		Title:      string(n.Title),
		URL:        n.URL.String(),
		CreatedAt:  n.CreatedAt.Time,
		UpdatedAt:  n.UpdatedAt.Time,
		State:      string(n.State),
		Body:       string(n.Body),
		Repository: domain.Repository{NameWithOwner: string(n.Repository.NameWithOwner)},
		Author:     convertActor(n.Author),
		Comments:   convertComments(n.Comments.Nodes),
	}
	if n.MergedAt != nil {
		t := n.MergedAt.Time
		pr.MergedAt = &t
	}
	if n.ClosedAt != nil {
		t := n.ClosedAt.Time
		pr.ClosedAt = &t
	}
	for _, r := range n.Reviews.Nodes {
		pr.Reviews = append(pr.Reviews, domain.Review{
			Author:    convertActor(r.Author),
			CreatedAt: r.CreatedAt.Time,
			State:     string(r.State),
		})
	}
	return pr
}
