package gitapi

import (
	"context"
	"time"

	"github.com/kroma-labs/catalyst-go/httpclient"
)

// PullRequest is a pull request document.
type PullRequest struct {
	ID                int64            `json:"id"`
	NodeID            string           `json:"node_id,omitempty"`
	URL               string           `json:"url"`
	HTMLURL           string           `json:"html_url"`
	DiffURL           string           `json:"diff_url,omitempty"`
	PatchURL          string           `json:"patch_url"`
	IssueURL          string           `json:"issue_url"`
	CommitsURL        string           `json:"commits_url"`
	ReviewCommentsURL string           `json:"review_comments_url"`
	ReviewCommentURL  string           `json:"review_comment_url"`
	CommentsURL       string           `json:"comments_url"`
	Number            int              `json:"number"`
	State             PullRequestState `json:"state"`
	Title             string           `json:"title"`
	Body              *string          `json:"body"`
	Draft             bool             `json:"draft,omitempty"`
	Locked            bool             `json:"locked,omitempty"`
	Merged            bool             `json:"merged,omitempty"`
	MergeCommitSHA    *string          `json:"merge_commit_sha,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	ClosedAt          *time.Time       `json:"closed_at"`
	MergedAt          *time.Time       `json:"merged_at"`
	User              User             `json:"user"`
	Head              BranchRef        `json:"head"`
	Base              BranchRef        `json:"base"`
}

// BranchRef is the head or base side of a pull request. Repo is nil when
// the source repository was deleted.
type BranchRef struct {
	Label string    `json:"label"`
	Ref   string    `json:"ref"`
	SHA   string    `json:"sha"`
	User  User      `json:"user"`
	Repo  *RepoInfo `json:"repo"`
}

// PullRequestFile is one changed file of a pull request.
type PullRequestFile struct {
	SHA         string `json:"sha"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	Changes     int    `json:"changes"`
	BlobURL     string `json:"blob_url"`
	RawURL      string `json:"raw_url"`
	ContentsURL string `json:"contents_url"`
	Patch       string `json:"patch,omitempty"`
}

// PullRequestQuery filters pull request listings.
type PullRequestQuery struct {
	State StateFilter `url:"state,omitempty"`
	// Head filters by head user and branch, as "user:ref-name".
	Head      string          `url:"head,omitempty"`
	Base      string          `url:"base,omitempty"`
	Sort      PullRequestSort `url:"sort,omitempty"`
	Direction SortDirection   `url:"direction,omitempty"`
}

// CreatePullRequest opens a pull request from head into base.
type CreatePullRequest struct {
	Title string  `json:"title"`
	Head  string  `json:"head"`
	Base  string  `json:"base"`
	Body  *string `json:"body,omitempty"`
	Draft *bool   `json:"draft,omitempty"`
}

// CreatePullRequestFromIssue converts an existing issue into a pull request.
type CreatePullRequestFromIssue struct {
	Head  string `json:"head"`
	Base  string `json:"base"`
	Issue int    `json:"issue"`
}

// PullRequestUpdate changes a pull request. Nil fields are left unchanged.
type PullRequestUpdate struct {
	Title *string           `json:"title,omitempty"`
	Body  *string           `json:"body,omitempty"`
	State *PullRequestState `json:"state,omitempty"`
	Base  *string           `json:"base,omitempty"`
}

// MergeRequest is the payload of a merge.
type MergeRequest struct {
	CommitTitle   *string `json:"commit_title,omitempty"`
	CommitMessage *string `json:"commit_message,omitempty"`
	SHA           *string `json:"sha,omitempty"`
	MergeMethod   *string `json:"merge_method,omitempty"`
}

// MergeResult is the reply to a merge. Failure and DocumentationURL are
// only set when the merge was refused.
type MergeResult struct {
	SHA              string       `json:"sha"`
	Merged           bool         `json:"merged"`
	Message          string       `json:"message"`
	DocumentationURL string       `json:"documentation_url,omitempty"`
	Failure          MergeFailure `json:"-"`
}

// MergeFailure says why a merge was refused. Nothing produces it until
// Merge is implemented.
type MergeFailure uint8

const (
	MergeNotPossible MergeFailure = iota + 1
	MergeSHAMismatch
)

// MergedStatus is the answer IsMerged will give once implemented.
type MergedStatus uint8

const (
	Merged MergedStatus = iota + 1
	NotMerged
)

// PullRequestService covers the pull request endpoints.
type PullRequestService service

func (s *PullRequestService) List(ctx context.Context, repo Repository, q *PullRequestQuery) ([]PullRequest, error) {
	u, err := WithQuery(s.loc.PullRequests(repo), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]PullRequest](ctx, s.exec, httpclient.Get, u)
}

func (s *PullRequestService) Get(ctx context.Context, ref PullRequestReference) (PullRequest, error) {
	return SendWithoutPayload[PullRequest](ctx, s.exec, httpclient.Get, s.loc.PullRequest(ref))
}

func (s *PullRequestService) Create(ctx context.Context, repo Repository, pr CreatePullRequest) (PullRequest, error) {
	return SendWithPayload[PullRequest](ctx, s.exec, httpclient.Post, s.loc.PullRequests(repo), pr)
}

// CreateFromIssue turns an issue into a pull request.
func (s *PullRequestService) CreateFromIssue(
	ctx context.Context,
	repo Repository,
	pr CreatePullRequestFromIssue,
) (PullRequest, error) {
	return SendWithPayload[PullRequest](ctx, s.exec, httpclient.Post, s.loc.PullRequests(repo), pr)
}

func (s *PullRequestService) Update(ctx context.Context, ref PullRequestReference, update PullRequestUpdate) (PullRequest, error) {
	return SendWithPayload[PullRequest](ctx, s.exec, httpclient.Patch, s.loc.PullRequest(ref), update)
}

func (s *PullRequestService) ListCommits(ctx context.Context, ref PullRequestReference) ([]Commit, error) {
	return SendWithoutPayload[[]Commit](ctx, s.exec, httpclient.Get, s.loc.PullRequestCommits(ref))
}

func (s *PullRequestService) ListFiles(ctx context.Context, ref PullRequestReference) ([]PullRequestFile, error) {
	return SendWithoutPayload[[]PullRequestFile](ctx, s.exec, httpclient.Get, s.loc.PullRequestFiles(ref))
}

// IsMerged is not implemented. The endpoint answers with a status code and
// no body, which the executor does not model.
func (s *PullRequestService) IsMerged(_ context.Context, _ PullRequestReference) (bool, error) {
	return false, notImplemented("pulls.is_merged")
}

// Merge is not implemented and always fails with KindNotImplemented.
func (s *PullRequestService) Merge(_ context.Context, _ PullRequestReference, _ MergeRequest) (MergeResult, error) {
	return MergeResult{}, notImplemented("pulls.merge")
}
