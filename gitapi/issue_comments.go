package gitapi

import (
	"context"
	"time"

	"github.com/kroma-labs/catalyst-go/httpclient"
)

// IssueComment is a comment in the conversation of an issue or pull request.
type IssueComment struct {
	ID        int64     `json:"id"`
	NodeID    string    `json:"node_id,omitempty"`
	URL       string    `json:"url"`
	HTMLURL   string    `json:"html_url"`
	IssueURL  string    `json:"issue_url,omitempty"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Issue is the subset of an issue document carried by comment events.
// PullRequest is set when the issue is a pull request.
type Issue struct {
	ID          int64           `json:"id"`
	URL         string          `json:"url"`
	HTMLURL     string          `json:"html_url"`
	Number      int             `json:"number"`
	State       string          `json:"state"`
	Title       string          `json:"title"`
	Body        *string         `json:"body"`
	User        User            `json:"user"`
	Comments    int             `json:"comments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ClosedAt    *time.Time      `json:"closed_at"`
	PullRequest *IssuePullLinks `json:"pull_request,omitempty"`
}

// IssuePullLinks points from an issue to its pull request.
type IssuePullLinks struct {
	URL      string `json:"url"`
	HTMLURL  string `json:"html_url"`
	DiffURL  string `json:"diff_url"`
	PatchURL string `json:"patch_url"`
}

// ListIssueCommentsQuery filters the comments of one issue.
type ListIssueCommentsQuery struct {
	Since time.Time `url:"since,omitempty"`
}

// ListRepoCommentsQuery filters issue comments across a repository.
type ListRepoCommentsQuery struct {
	Sort      CommentSort   `url:"sort,omitempty"`
	Direction SortDirection `url:"direction,omitempty"`
	Since     time.Time     `url:"since,omitempty"`
}

// CreateIssueComment is the payload of a new issue comment.
type CreateIssueComment struct {
	Body string `json:"body"`
}

// IssueCommentService covers issue comments.
type IssueCommentService service

func (s *IssueCommentService) ListInIssue(
	ctx context.Context,
	repo Repository,
	issue int,
	q *ListIssueCommentsQuery,
) ([]IssueComment, error) {
	u, err := WithQuery(s.loc.IssueComments(repo, issue), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]IssueComment](ctx, s.exec, httpclient.Get, u)
}

func (s *IssueCommentService) ListInRepo(
	ctx context.Context,
	repo Repository,
	q *ListRepoCommentsQuery,
) ([]IssueComment, error) {
	u, err := WithQuery(s.loc.RepoIssueComments(repo), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]IssueComment](ctx, s.exec, httpclient.Get, u)
}

func (s *IssueCommentService) Get(ctx context.Context, repo Repository, id int64) (IssueComment, error) {
	return SendWithoutPayload[IssueComment](ctx, s.exec, httpclient.Get, s.loc.IssueComment(repo, id))
}

func (s *IssueCommentService) Create(
	ctx context.Context,
	repo Repository,
	issue int,
	comment CreateIssueComment,
) (IssueComment, error) {
	return SendWithPayload[IssueComment](ctx, s.exec, httpclient.Post, s.loc.IssueComments(repo, issue), comment)
}

func (s *IssueCommentService) Edit(ctx context.Context, repo Repository, id int64, edit EditComment) (IssueComment, error) {
	return SendWithPayload[IssueComment](ctx, s.exec, httpclient.Patch, s.loc.IssueComment(repo, id), edit)
}

// Delete is not implemented and always fails with KindNotImplemented.
func (s *IssueCommentService) Delete(_ context.Context, _ Repository, _ int64) error {
	return notImplemented("issues.comments.delete")
}
