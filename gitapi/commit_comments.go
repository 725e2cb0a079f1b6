package gitapi

import (
	"context"
	"time"

	"github.com/kroma-labs/catalyst-go/httpclient"
)

// PullRequestComment is a review comment on the diff of a pull request.
// Position is nil once the line is no longer part of the diff.
type PullRequestComment struct {
	ID               int64     `json:"id"`
	NodeID           string    `json:"node_id,omitempty"`
	URL              string    `json:"url"`
	HTMLURL          string    `json:"html_url"`
	PullRequestURL   string    `json:"pull_request_url"`
	DiffHunk         string    `json:"diff_hunk"`
	Path             string    `json:"path"`
	Position         *int      `json:"position"`
	OriginalPosition *int      `json:"original_position"`
	CommitID         string    `json:"commit_id"`
	OriginalCommitID string    `json:"original_commit_id"`
	InReplyToID      *int64    `json:"in_reply_to_id,omitempty"`
	User             User      `json:"user"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PullRequestCommentQuery filters review comments across a repository.
type PullRequestCommentQuery struct {
	Sort      CommentSort   `url:"sort,omitempty"`
	Direction SortDirection `url:"direction,omitempty"`
	Since     time.Time     `url:"since,omitempty"`
}

// CreateCommitComment places a review comment on a line of the diff.
type CreateCommitComment struct {
	Body     string `json:"body"`
	CommitID string `json:"commit_id"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

// ReplyComment answers an existing review comment.
type ReplyComment struct {
	Body      string `json:"body"`
	InReplyTo int64  `json:"in_reply_to"`
}

// EditComment replaces the body of a comment.
type EditComment struct {
	Body string `json:"body"`
}

// CommitCommentService covers pull request review comments.
type CommitCommentService service

// List lists the review comments of one pull request.
func (s *CommitCommentService) List(ctx context.Context, ref PullRequestReference) ([]PullRequestComment, error) {
	return SendWithoutPayload[[]PullRequestComment](ctx, s.exec, httpclient.Get, s.loc.PullRequestComments(ref))
}

// ListAll lists review comments on every pull request of repo.
func (s *CommitCommentService) ListAll(
	ctx context.Context,
	repo Repository,
	q *PullRequestCommentQuery,
) ([]PullRequestComment, error) {
	u, err := WithQuery(s.loc.AllPullRequestComments(repo), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]PullRequestComment](ctx, s.exec, httpclient.Get, u)
}

func (s *CommitCommentService) Get(ctx context.Context, repo Repository, id int64) (PullRequestComment, error) {
	return SendWithoutPayload[PullRequestComment](ctx, s.exec, httpclient.Get, s.loc.PullRequestComment(repo, id))
}

func (s *CommitCommentService) Create(
	ctx context.Context,
	ref PullRequestReference,
	comment CreateCommitComment,
) (PullRequestComment, error) {
	return SendWithPayload[PullRequestComment](ctx, s.exec, httpclient.Post, s.loc.PullRequestComments(ref), comment)
}

func (s *CommitCommentService) Reply(
	ctx context.Context,
	ref PullRequestReference,
	reply ReplyComment,
) (PullRequestComment, error) {
	return SendWithPayload[PullRequestComment](ctx, s.exec, httpclient.Post, s.loc.PullRequestComments(ref), reply)
}

func (s *CommitCommentService) Edit(
	ctx context.Context,
	repo Repository,
	id int64,
	edit EditComment,
) (PullRequestComment, error) {
	return SendWithPayload[PullRequestComment](ctx, s.exec, httpclient.Patch, s.loc.PullRequestComment(repo, id), edit)
}

// Delete is not implemented and always fails with KindNotImplemented.
func (s *CommitCommentService) Delete(_ context.Context, _ Repository, _ int64) error {
	return notImplemented("pulls.comments.delete")
}
