package gitapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pullRequestEventJSON = `{
  "action": "opened",
  "number": 21,
  "pull_request": {
    "id": 1001,
    "number": 21,
    "state": "open",
    "title": "Add widgets",
    "created_at": "2024-05-01T10:00:00Z",
    "updated_at": "2024-05-01T10:00:00Z",
    "closed_at": null,
    "merged_at": null,
    "user": {"login": "octocat", "id": 1},
    "head": {"label": "octocat:feature", "ref": "feature", "sha": "aaa"},
    "base": {"label": "acme:main", "ref": "main", "sha": "bbb"}
  },
  "repository": {"id": 7, "name": "widgets", "full_name": "acme/widgets", "owner": {"login": "acme", "id": 2}},
  "sender": {"login": "octocat", "id": 1}
}`

const pushEventJSON = `{
  "ref": "refs/heads/main",
  "before": "aaa",
  "after": "bbb",
  "created": false,
  "deleted": false,
  "forced": false,
  "base_ref": null,
  "compare": "https://github.com/acme/widgets/compare/aaa...bbb",
  "commits": [{
    "id": "bbb",
    "distinct": true,
    "message": "Fix build",
    "timestamp": "2024-05-01T10:00:00+02:00",
    "url": "https://github.com/acme/widgets/commit/bbb",
    "author": {"name": "Octo Cat", "email": "octo@example.com", "username": "octocat"},
    "committer": {"name": "Octo Cat", "email": "octo@example.com"},
    "added": [],
    "removed": [],
    "modified": ["main.go"]
  }],
  "head_commit": null,
  "repository": {"id": 7, "name": "widgets", "full_name": "acme/widgets", "created_at": 1714557600, "default_branch": "main"},
  "pusher": {"name": "octocat", "email": "octo@example.com"},
  "sender": {"login": "octocat", "id": 1}
}`

func TestDecodeEvent(t *testing.T) {
	t.Run("given pull_request, then decodes action and pull request", func(t *testing.T) {
		got, err := DecodeEvent(EventPullRequest, []byte(pullRequestEventJSON))
		require.NoError(t, err)

		ev, ok := got.(*PullRequestEvent)
		require.True(t, ok)
		assert.Equal(t, PullRequestOpened, ev.Action)
		assert.Equal(t, 21, ev.Number)
		assert.Equal(t, Open, ev.PullRequest.State)
		assert.Nil(t, ev.PullRequest.MergedAt)
		assert.Equal(t, "feature", ev.PullRequest.Head.Ref)
		assert.Equal(t, "acme/widgets", ev.Repository.FullName)
	})

	t.Run("given push, then decodes commits", func(t *testing.T) {
		got, err := DecodeEvent(EventPush, []byte(pushEventJSON))
		require.NoError(t, err)

		ev, ok := got.(*PushEvent)
		require.True(t, ok)
		require.Len(t, ev.Commits, 1)
		assert.Equal(t, []string{"main.go"}, ev.Commits[0].Modified)
		assert.Equal(t, "octocat", ev.Commits[0].Author.Username)
		assert.Nil(t, ev.HeadCommit)
		assert.Nil(t, ev.BaseRef)
		assert.Equal(t, "main", ev.Repository.DefaultBranch)
	})

	t.Run("given issue_comment, then decodes comment", func(t *testing.T) {
		got, err := DecodeEvent(EventIssueComment, []byte(`{
			"action": "created",
			"issue": {"id": 3, "number": 4, "state": "open", "pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/4"}},
			"comment": {"id": 1, "body": "ship it", "user": {"login": "octocat"}},
			"repository": {"id": 7},
			"sender": {"login": "octocat"}
		}`))
		require.NoError(t, err)

		ev, ok := got.(*IssueCommentEvent)
		require.True(t, ok)
		assert.Equal(t, CommentCreated, ev.Action)
		assert.Equal(t, "ship it", ev.Comment.Body)
		require.NotNil(t, ev.Issue.PullRequest)
	})

	t.Run("given review comment, then decodes comment and pull request", func(t *testing.T) {
		got, err := DecodeEvent(EventPullRequestReviewComment, []byte(`{
			"action": "edited",
			"comment": {"id": 8, "path": "main.go", "position": null},
			"pull_request": {"id": 1, "state": "closed"},
			"repository": {"id": 7},
			"sender": {"login": "octocat"}
		}`))
		require.NoError(t, err)

		ev, ok := got.(*PullRequestReviewCommentEvent)
		require.True(t, ok)
		assert.Equal(t, CommentEdited, ev.Action)
		assert.Nil(t, ev.Comment.Position)
		assert.Equal(t, Closed, ev.PullRequest.State)
	})

	failures := []struct {
		name    string
		event   string
		payload string
	}{
		{name: "given unknown event, then decode kind", event: "deployment", payload: `{}`},
		{name: "given malformed payload, then decode kind", event: EventPush, payload: `{"commits":`},
		{name: "given unknown action, then decode kind", event: EventPullRequest, payload: `{"action":"exploded"}`},
		{name: "given empty payload, then decode kind", event: EventIssueComment, payload: ``},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent(tt.event, []byte(tt.payload))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Equal(t, KindDecode, KindOf(err))
		})
	}

	t.Run("given unknown event, then cause names it", func(t *testing.T) {
		_, err := DecodeEvent("deployment", nil)
		assert.ErrorIs(t, err, ErrUnknownEvent)
		assert.Contains(t, err.Error(), `"deployment"`)
	})
}
