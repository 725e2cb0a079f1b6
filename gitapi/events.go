package gitapi

import (
	"errors"
	"fmt"

	"github.com/kroma-labs/catalyst-go/codec"
)

// EventHeader carries the event name of a webhook delivery.
const EventHeader = "X-GitHub-Event"

// Webhook event names accepted by DecodeEvent.
const (
	EventPush                     = "push"
	EventPullRequest              = "pull_request"
	EventIssueComment             = "issue_comment"
	EventPullRequestReviewComment = "pull_request_review_comment"
)

// ErrUnknownEvent is the cause of a KindDecode error for an event name
// DecodeEvent does not handle.
var ErrUnknownEvent = errors.New("unknown event")

// PushEvent is delivered for every push to a branch or tag.
type PushEvent struct {
	Ref        string         `json:"ref"`
	Before     string         `json:"before"`
	After      string         `json:"after"`
	Created    bool           `json:"created"`
	Deleted    bool           `json:"deleted"`
	Forced     bool           `json:"forced"`
	BaseRef    *string        `json:"base_ref"`
	Compare    string         `json:"compare"`
	Commits    []PushCommit   `json:"commits"`
	HeadCommit *PushCommit    `json:"head_commit"`
	Repository PushRepository `json:"repository"`
	Pusher     GitUser        `json:"pusher"`
	Sender     User           `json:"sender"`
}

// PushRepository is the repository shape of push events, whose timestamps
// are not comparable with RepoInfo's and are left out.
type PushRepository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	URL           string `json:"url"`
	DefaultBranch string `json:"default_branch"`
	MasterBranch  string `json:"master_branch,omitempty"`
}

// PullRequestEvent is delivered on pull request activity.
type PullRequestEvent struct {
	Action      PullRequestAction `json:"action"`
	Number      int               `json:"number"`
	PullRequest PullRequest       `json:"pull_request"`
	Repository  RepoInfo          `json:"repository"`
	Sender      User              `json:"sender"`
}

// IssueCommentEvent is delivered on comments in issue and pull request
// conversations.
type IssueCommentEvent struct {
	Action     CommentAction `json:"action"`
	Issue      Issue         `json:"issue"`
	Comment    IssueComment  `json:"comment"`
	Repository RepoInfo      `json:"repository"`
	Sender     User          `json:"sender"`
}

// PullRequestReviewCommentEvent is delivered on review comment activity.
type PullRequestReviewCommentEvent struct {
	Action      CommentAction      `json:"action"`
	Comment     PullRequestComment `json:"comment"`
	PullRequest PullRequest        `json:"pull_request"`
	Repository  RepoInfo           `json:"repository"`
	Sender      User               `json:"sender"`
}

// DecodeEvent decodes a webhook payload by its event name, the value of
// EventHeader. It returns a pointer to one of the event types above.
// Unknown names and malformed payloads fail with KindDecode.
func DecodeEvent(name string, payload []byte) (any, error) {
	switch name {
	case EventPush:
		return decodeEvent[PushEvent](name, payload)
	case EventPullRequest:
		return decodeEvent[PullRequestEvent](name, payload)
	case EventIssueComment:
		return decodeEvent[IssueCommentEvent](name, payload)
	case EventPullRequestReviewComment:
		return decodeEvent[PullRequestReviewCommentEvent](name, payload)
	}
	return nil, &Error{
		Kind: KindDecode,
		Op:   "event",
		Err:  fmt.Errorf("%w: %q", ErrUnknownEvent, name),
	}
}

func decodeEvent[E any](name string, payload []byte) (any, error) {
	ev, err := codec.Decode[E](payload)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "event " + name, Err: err}
	}
	return &ev, nil
}
