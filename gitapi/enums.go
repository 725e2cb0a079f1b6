package gitapi

import "github.com/kroma-labs/catalyst-go/codec"

// The zero value of every enum here means "not set". It is dropped from
// query strings; optional payload fields hold a pointer instead, since the
// zero value does not marshal.

// SortDirection orders list results.
type SortDirection uint8

const (
	Ascending SortDirection = iota + 1
	Descending
)

var sortDirections = codec.NewEnum("SortDirection", map[SortDirection]string{
	Ascending:  "asc",
	Descending: "desc",
})

func (d SortDirection) String() string               { return sortDirections.String(d) }
func (d SortDirection) MarshalText() ([]byte, error) { return sortDirections.MarshalText(d) }
func (d *SortDirection) UnmarshalText(b []byte) error { return sortDirections.UnmarshalText(d, b) }

// PullRequestState is the state reported on a pull request.
type PullRequestState uint8

const (
	Open PullRequestState = iota + 1
	Closed
)

var pullRequestStates = codec.NewEnum("PullRequestState", map[PullRequestState]string{
	Open:   "open",
	Closed: "closed",
})

func (s PullRequestState) String() string               { return pullRequestStates.String(s) }
func (s PullRequestState) MarshalText() ([]byte, error) { return pullRequestStates.MarshalText(s) }
func (s *PullRequestState) UnmarshalText(b []byte) error {
	return pullRequestStates.UnmarshalText(s, b)
}

// StateFilter selects pull requests by state when listing.
type StateFilter uint8

const (
	StateOpen StateFilter = iota + 1
	StateClosed
	StateAll
)

var stateFilters = codec.NewEnum("StateFilter", map[StateFilter]string{
	StateOpen:   "open",
	StateClosed: "closed",
	StateAll:    "all",
})

func (s StateFilter) String() string               { return stateFilters.String(s) }
func (s StateFilter) MarshalText() ([]byte, error) { return stateFilters.MarshalText(s) }
func (s *StateFilter) UnmarshalText(b []byte) error { return stateFilters.UnmarshalText(s, b) }

// PullRequestSort orders pull request listings.
type PullRequestSort uint8

const (
	SortByCreated PullRequestSort = iota + 1
	SortByUpdated
	SortByPopularity
	SortByLongRunning
)

var pullRequestSorts = codec.NewEnum("PullRequestSort", map[PullRequestSort]string{
	SortByCreated:     "created",
	SortByUpdated:     "updated",
	SortByPopularity:  "popularity",
	SortByLongRunning: "long-running",
})

func (s PullRequestSort) String() string               { return pullRequestSorts.String(s) }
func (s PullRequestSort) MarshalText() ([]byte, error) { return pullRequestSorts.MarshalText(s) }
func (s *PullRequestSort) UnmarshalText(b []byte) error {
	return pullRequestSorts.UnmarshalText(s, b)
}

// CommentSort orders comment listings.
type CommentSort uint8

const (
	CommentsByCreated CommentSort = iota + 1
	CommentsByUpdated
)

var commentSorts = codec.NewEnum("CommentSort", map[CommentSort]string{
	CommentsByCreated: "created",
	CommentsByUpdated: "updated",
})

func (s CommentSort) String() string               { return commentSorts.String(s) }
func (s CommentSort) MarshalText() ([]byte, error) { return commentSorts.MarshalText(s) }
func (s *CommentSort) UnmarshalText(b []byte) error { return commentSorts.UnmarshalText(s, b) }

// RepoVisibility filters the authenticated user's repositories.
type RepoVisibility uint8

const (
	VisibilityPublic RepoVisibility = iota + 1
	VisibilityPrivate
	VisibilityAll
)

var repoVisibilities = codec.NewEnum("RepoVisibility", map[RepoVisibility]string{
	VisibilityPublic:  "public",
	VisibilityPrivate: "private",
	VisibilityAll:     "all",
})

func (v RepoVisibility) String() string               { return repoVisibilities.String(v) }
func (v RepoVisibility) MarshalText() ([]byte, error) { return repoVisibilities.MarshalText(v) }
func (v *RepoVisibility) UnmarshalText(b []byte) error {
	return repoVisibilities.UnmarshalText(v, b)
}

// RepoSort orders repository listings.
type RepoSort uint8

const (
	ReposByCreated RepoSort = iota + 1
	ReposByUpdated
	ReposByPushed
	ReposByFullName
)

var repoSorts = codec.NewEnum("RepoSort", map[RepoSort]string{
	ReposByCreated:  "created",
	ReposByUpdated:  "updated",
	ReposByPushed:   "pushed",
	ReposByFullName: "full_name",
})

func (s RepoSort) String() string               { return repoSorts.String(s) }
func (s RepoSort) MarshalText() ([]byte, error) { return repoSorts.MarshalText(s) }
func (s *RepoSort) UnmarshalText(b []byte) error { return repoSorts.UnmarshalText(s, b) }

// PullRequestAction is the action of a pull_request webhook event.
type PullRequestAction uint8

const (
	PullRequestAssigned PullRequestAction = iota + 1
	PullRequestUnassigned
	PullRequestReviewRequested
	PullRequestReviewRequestRemoved
	PullRequestLabeled
	PullRequestUnlabeled
	PullRequestOpened
	PullRequestEdited
	PullRequestClosed
	PullRequestReopened
	PullRequestSynchronize
	PullRequestReadyForReview
	PullRequestConvertedToDraft
	PullRequestLocked
	PullRequestUnlocked
	PullRequestMilestoned
	PullRequestDemilestoned
	PullRequestAutoMergeEnabled
	PullRequestAutoMergeDisabled
	PullRequestEnqueued
	PullRequestDequeued
)

var pullRequestActions = codec.NewEnum("PullRequestAction", map[PullRequestAction]string{
	PullRequestAssigned:             "assigned",
	PullRequestUnassigned:           "unassigned",
	PullRequestReviewRequested:      "review_requested",
	PullRequestReviewRequestRemoved: "review_request_removed",
	PullRequestLabeled:              "labeled",
	PullRequestUnlabeled:            "unlabeled",
	PullRequestOpened:               "opened",
	PullRequestEdited:               "edited",
	PullRequestClosed:               "closed",
	PullRequestReopened:             "reopened",
	PullRequestSynchronize:          "synchronize",
	PullRequestReadyForReview:       "ready_for_review",
	PullRequestConvertedToDraft:     "converted_to_draft",
	PullRequestLocked:               "locked",
	PullRequestUnlocked:             "unlocked",
	PullRequestMilestoned:           "milestoned",
	PullRequestDemilestoned:         "demilestoned",
	PullRequestAutoMergeEnabled:     "auto_merge_enabled",
	PullRequestAutoMergeDisabled:    "auto_merge_disabled",
	PullRequestEnqueued:             "enqueued",
	PullRequestDequeued:             "dequeued",
})

func (a PullRequestAction) String() string               { return pullRequestActions.String(a) }
func (a PullRequestAction) MarshalText() ([]byte, error) { return pullRequestActions.MarshalText(a) }
func (a *PullRequestAction) UnmarshalText(b []byte) error {
	return pullRequestActions.UnmarshalText(a, b)
}

// CommentAction is the action of a comment webhook event.
type CommentAction uint8

const (
	CommentCreated CommentAction = iota + 1
	CommentEdited
	CommentDeleted
)

var commentActions = codec.NewEnum("CommentAction", map[CommentAction]string{
	CommentCreated: "created",
	CommentEdited:  "edited",
	CommentDeleted: "deleted",
})

func (a CommentAction) String() string               { return commentActions.String(a) }
func (a CommentAction) MarshalText() ([]byte, error) { return commentActions.MarshalText(a) }
func (a *CommentAction) UnmarshalText(b []byte) error { return commentActions.UnmarshalText(a, b) }
