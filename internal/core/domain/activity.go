package domain

import "time"

// GhostActor is the display name substituted for deleted or anonymized
// authors across all collaboration events.
const GhostActor = "ghost"

// Actor identifies a developer on the collaboration platform.
type Actor struct {
	Login string `json:"login"`
}

// Repository identifies the repository an event belongs to.
type Repository struct {
	NameWithOwner string `json:"nameWithOwner"`
}

// Comment is a comment on an issue or pull request.
type Comment struct {
	Author    *Actor    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	URL       string    `json:"url"`
	Body      string    `json:"body,omitempty"`
}

// Review is a code review on a pull request.
type Review struct {
	Author    *Actor    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	State     string    `json:"state"`
}

// Issue is a collaboration-platform issue with its nested comments.
type Issue struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	State      string     `json:"state"`
	Body       string     `json:"body,omitempty"`
	Repository Repository `json:"repository"`
	Author     *Actor     `json:"author"`
	Comments   []Comment  `json:"comments"`
}

// PullRequest is a pull request with its nested comments and reviews.
type PullRequest struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	MergedAt   *time.Time `json:"mergedAt,omitempty"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
	State      string     `json:"state"`
	Body       string     `json:"body,omitempty"`
	Repository Repository `json:"repository"`
	Author     *Actor     `json:"author"`
	Comments   []Comment  `json:"comments"`
	Reviews    []Review   `json:"reviews"`
}

// ActivityFeed is one fetch of recent collaboration events from the
// activity source.
type ActivityFeed struct {
	Issues       []Issue       `json:"issues"`
	PullRequests []PullRequest `json:"prs"`
}

// AuthorName returns the actor's login, or GhostActor when the author
// has been deleted or anonymized.
func AuthorName(a *Actor) string {
	if a == nil || a.Login == "" {
		return GhostActor
	}
	return a.Login
}

// IssueComment links a comment back to the issue it was made on.
type IssueComment struct {
	Issue   *Issue  `json:"issue"`
	Comment Comment `json:"comment"`
}

// PullRequestComment links a comment back to the pull request it was made on.
type PullRequestComment struct {
	PullRequest *PullRequest `json:"pr"`
	Comment     Comment      `json:"comment"`
}

// PullRequestReview links a review back to the reviewed pull request.
type PullRequestReview struct {
	PullRequest *PullRequest `json:"pr"`
	Review      Review       `json:"review"`
}

// RepoActivity is the per-repository slice of a developer's activity.
type RepoActivity struct {
	IssuesCreated   []*Issue             `json:"issues_created,omitempty"`
	IssuesCommented []IssueComment       `json:"issues_commented,omitempty"`
	PRsCreated      []*PullRequest       `json:"prs_created,omitempty"`
	PRsCommented    []PullRequestComment `json:"prs_commented,omitempty"`
	PRsReviewed     []PullRequestReview  `json:"prs_reviewed,omitempty"`
}

// DeveloperActivity aggregates all collaboration events attributed to one
// developer. Contributions are keyed by role: the author of a pull request
// who also reviews another one appears in both PRsCreated and PRsReviewed.
type DeveloperActivity struct {
	Username        string                   `json:"username"`
	IssuesCreated   []*Issue                 `json:"issues_created"`
	IssuesCommented []IssueComment           `json:"issues_commented"`
	PRsCreated      []*PullRequest           `json:"prs_created"`
	PRsCommented    []PullRequestComment     `json:"prs_commented"`
	PRsReviewed     []PullRequestReview      `json:"prs_reviewed"`
	Repos           []string                 `json:"repos"`
	ByRepo          map[string]*RepoActivity `json:"by_repo"`
	TotalComments   int                      `json:"total_comments"`
	TotalIssues     int                      `json:"total_issues"`
	TotalPRs        int                      `json:"total_prs"`
	TotalReviews    int                      `json:"total_reviews"`
}
