package gitapi

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kroma-labs/catalyst-go/githubtest"
	"github.com/kroma-labs/catalyst-go/httpclient"
)

func newTestClient(t *testing.T, srv *githubtest.Server, httpOpts ...httpclient.Option) *Client {
	t.Helper()
	return NewFromHTTP(httpOpts, WithBaseURL(srv.URL()))
}

func TestCommitComments_List_EndToEnd(t *testing.T) {
	srv := githubtest.New(t).Handle(http.MethodGet, "/repos/{owner}/{repo}/pulls/{number}/comments",
		http.StatusOK, `[{"id":1,"body":"nit","path":"main.go","position":4,"user":{"login":"octocat","id":2}}]`)
	client := newTestClient(t, srv, httpclient.WithToken("s3cret"))

	comments, err := client.CommitComments.List(context.Background(), PR("acme", "widgets", 21))

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(1), comments[0].ID)
	assert.Equal(t, "nit", comments[0].Body)
	require.NotNil(t, comments[0].Position)
	assert.Equal(t, 4, *comments[0].Position)
	assert.Equal(t, "octocat", comments[0].User.Login)

	req := srv.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/repos/acme/widgets/pulls/21/comments", req.Path)
	assert.Equal(t, httpclient.DefaultMediaType, req.Header.Get("Accept"))
	assert.Equal(t, httpclient.DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "token s3cret", req.Header.Get("Authorization"))
	assert.Empty(t, req.Body)
}

func TestServices_Unauthenticated(t *testing.T) {
	srv := githubtest.New(t).Handle(http.MethodGet, "/repos/{owner}/{repo}", http.StatusOK, `{"id":3,"name":"widgets"}`)
	client := newTestClient(t, srv)

	repo, err := client.Repos.Get(context.Background(), Repo("acme", "widgets"))

	require.NoError(t, err)
	assert.Equal(t, "widgets", repo.Name)
	assert.NotContains(t, srv.LastRequest().Header, "Authorization")
}

// route checks that an operation hits one verb and path and decodes the reply.
type route struct {
	name      string
	method    string
	pattern   string
	reply     string
	call      func(ctx context.Context, c *Client) (any, error)
	wantPath  string
	wantQuery string
	wantBody  string
}

func runRoutes(t *testing.T, routes []route) {
	t.Helper()
	for _, tt := range routes {
		t.Run(tt.name, func(t *testing.T) {
			srv := githubtest.New(t).Handle(tt.method, tt.pattern, http.StatusOK, tt.reply)
			client := newTestClient(t, srv)

			got, err := tt.call(context.Background(), client)

			require.NoError(t, err)
			assert.NotNil(t, got)

			req := srv.LastRequest()
			require.NotNil(t, req)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
			assert.Equal(t, tt.wantQuery, req.RawQuery)
			if tt.wantBody == "" {
				assert.Empty(t, req.Body)
				assert.Empty(t, req.Header.Get("Content-Type"))
			} else {
				assert.JSONEq(t, tt.wantBody, string(req.Body))
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestRepoService(t *testing.T) {
	repo := Repo("acme", "widgets")

	runRoutes(t, []route{
		{
			name: "given own repos query, then GET with filters", method: http.MethodGet, pattern: "/user/repos", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Repos.ListOwn(ctx, &RepoQuery{Visibility: VisibilityAll, Sort: ReposByFullName, Direction: Ascending})
			},
			wantPath: "/user/repos", wantQuery: "direction=asc&sort=full_name&visibility=all",
		},
		{
			name: "given user, then lists user repos", method: http.MethodGet, pattern: "/users/{user}/repos", reply: `[{"id":1}]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListForUser(ctx, "octocat") },
			wantPath: "/users/octocat/repos",
		},
		{
			name: "given org, then lists org repos", method: http.MethodGet, pattern: "/orgs/{org}/repos", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListForOrg(ctx, "acme") },
			wantPath: "/orgs/acme/repos",
		},
		{
			name: "given since, then lists public repos after it", method: http.MethodGet, pattern: "/repositories", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListPublic(ctx, 364) },
			wantPath: "/repositories", wantQuery: "since=364",
		},
		{
			name: "given details, then POST to own repos", method: http.MethodPost, pattern: "/user/repos", reply: `{"id":9}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Repos.Create(ctx, CreateRepository{Name: "gadgets", Private: ptr(true)})
			},
			wantPath: "/user/repos", wantBody: `{"name":"gadgets","private":true}`,
		},
		{
			name: "given org details, then POST to org repos", method: http.MethodPost, pattern: "/orgs/{org}/repos", reply: `{"id":9}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Repos.CreateForOrg(ctx, "acme", CreateRepository{Name: "gadgets"})
			},
			wantPath: "/orgs/acme/repos", wantBody: `{"name":"gadgets"}`,
		},
		{
			name: "given edit, then PATCH repo", method: http.MethodPatch, pattern: "/repos/{owner}/{repo}", reply: `{"id":9}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Repos.Edit(ctx, repo, EditRepository{Name: "widgets", DefaultBranch: ptr("trunk")})
			},
			wantPath: "/repos/acme/widgets", wantBody: `{"name":"widgets","default_branch":"trunk"}`,
		},
		{
			name: "given anon flag, then lists contributors", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/contributors",
			reply: `[{"login":"a"},{"type":"Anonymous","contributions":3}]`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Repos.ListContributors(ctx, repo, &ContributorsQuery{Anon: true})
			},
			wantPath: "/repos/acme/widgets/contributors", wantQuery: "anon=true",
		},
		{
			name: "given repo, then lists languages", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/languages", reply: `{"Go":1024}`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListLanguages(ctx, repo) },
			wantPath: "/repos/acme/widgets/languages",
		},
		{
			name: "given repo, then lists teams", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/teams", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListTeams(ctx, repo) },
			wantPath: "/repos/acme/widgets/teams",
		},
		{
			name: "given repo, then lists tags", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/tags", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListTags(ctx, repo) },
			wantPath: "/repos/acme/widgets/tags",
		},
		{
			name: "given repo, then lists branches", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/branches", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) { return c.Repos.ListBranches(ctx, repo) },
			wantPath: "/repos/acme/widgets/branches",
		},
		{
			name: "given branch, then gets it", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/branches/{branch}",
			reply: `{"name":"main","commit":{"sha":"abc"}}`,
			call:  func(ctx context.Context, c *Client) (any, error) { return c.Repos.GetBranch(ctx, repo, "main") },
			wantPath: "/repos/acme/widgets/branches/main",
		},
	})
}

func TestPullRequestService(t *testing.T) {
	repo := Repo("acme", "widgets")
	ref := PR("acme", "widgets", 21)

	runRoutes(t, []route{
		{
			name: "given query, then lists with filters", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls", reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.PullRequests.List(ctx, repo, &PullRequestQuery{State: StateClosed, Base: "main"})
			},
			wantPath: "/repos/acme/widgets/pulls", wantQuery: "base=main&state=closed",
		},
		{
			name: "given nil query, then lists without filters", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls", reply: `[]`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.PullRequests.List(ctx, repo, nil) },
			wantPath: "/repos/acme/widgets/pulls",
		},
		{
			name: "given reference, then gets pull request", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls/{number}",
			reply:    `{"id":1,"number":21,"state":"open","head":{"ref":"feature"},"base":{"ref":"main"}}`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.PullRequests.Get(ctx, ref) },
			wantPath: "/repos/acme/widgets/pulls/21",
		},
		{
			name: "given new pull request, then POST", method: http.MethodPost, pattern: "/repos/{owner}/{repo}/pulls", reply: `{"id":1,"state":"open"}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.PullRequests.Create(ctx, repo, CreatePullRequest{Title: "Add", Head: "octo:feature", Base: "main"})
			},
			wantPath: "/repos/acme/widgets/pulls", wantBody: `{"title":"Add","head":"octo:feature","base":"main"}`,
		},
		{
			name: "given issue, then POST conversion", method: http.MethodPost, pattern: "/repos/{owner}/{repo}/pulls", reply: `{"id":1,"state":"open"}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.PullRequests.CreateFromIssue(ctx, repo, CreatePullRequestFromIssue{Head: "feature", Base: "main", Issue: 4})
			},
			wantPath: "/repos/acme/widgets/pulls", wantBody: `{"head":"feature","base":"main","issue":4}`,
		},
		{
			name: "given update, then PATCH with state wire string", method: http.MethodPatch, pattern: "/repos/{owner}/{repo}/pulls/{number}",
			reply: `{"id":1,"state":"closed"}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.PullRequests.Update(ctx, ref, PullRequestUpdate{State: ptr(Closed)})
			},
			wantPath: "/repos/acme/widgets/pulls/21", wantBody: `{"state":"closed"}`,
		},
		{
			name: "given reference, then lists commits", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls/{number}/commits",
			reply:    `[{"sha":"abc","commit":{"message":"m"}}]`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.PullRequests.ListCommits(ctx, ref) },
			wantPath: "/repos/acme/widgets/pulls/21/commits",
		},
		{
			name: "given reference, then lists files", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls/{number}/files",
			reply:    `[{"filename":"main.go","status":"modified"}]`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.PullRequests.ListFiles(ctx, ref) },
			wantPath: "/repos/acme/widgets/pulls/21/files",
		},
	})
}

func TestCommitCommentService(t *testing.T) {
	repo := Repo("acme", "widgets")
	ref := PR("acme", "widgets", 21)

	runRoutes(t, []route{
		{
			name: "given repo query, then lists all review comments", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls/comments",
			reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.CommitComments.ListAll(ctx, repo, &PullRequestCommentQuery{Sort: CommentsByCreated, Direction: Descending})
			},
			wantPath: "/repos/acme/widgets/pulls/comments", wantQuery: "direction=desc&sort=created",
		},
		{
			name: "given id, then gets comment", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/pulls/comments/{id}", reply: `{"id":9}`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.CommitComments.Get(ctx, repo, 9) },
			wantPath: "/repos/acme/widgets/pulls/comments/9",
		},
		{
			name: "given comment, then POST to pull request", method: http.MethodPost, pattern: "/repos/{owner}/{repo}/pulls/{number}/comments",
			reply: `{"id":10}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.CommitComments.Create(ctx, ref, CreateCommitComment{Body: "nit", CommitID: "abc", Path: "a.go", Position: 2})
			},
			wantPath: "/repos/acme/widgets/pulls/21/comments",
			wantBody: `{"body":"nit","commit_id":"abc","path":"a.go","position":2}`,
		},
		{
			name: "given reply, then POST with in_reply_to", method: http.MethodPost, pattern: "/repos/{owner}/{repo}/pulls/{number}/comments",
			reply: `{"id":11}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.CommitComments.Reply(ctx, ref, ReplyComment{Body: "done", InReplyTo: 10})
			},
			wantPath: "/repos/acme/widgets/pulls/21/comments", wantBody: `{"body":"done","in_reply_to":10}`,
		},
		{
			name: "given edit, then PATCH comment", method: http.MethodPatch, pattern: "/repos/{owner}/{repo}/pulls/comments/{id}", reply: `{"id":10}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.CommitComments.Edit(ctx, repo, 10, EditComment{Body: "fixed"})
			},
			wantPath: "/repos/acme/widgets/pulls/comments/10", wantBody: `{"body":"fixed"}`,
		},
	})
}

func TestIssueCommentService(t *testing.T) {
	repo := Repo("acme", "widgets")

	runRoutes(t, []route{
		{
			name: "given issue, then lists its comments", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/issues/{number}/comments",
			reply:    `[{"id":1}]`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.IssueComments.ListInIssue(ctx, repo, 3, nil) },
			wantPath: "/repos/acme/widgets/issues/3/comments",
		},
		{
			name: "given repo query, then lists repo comments", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/issues/comments",
			reply: `[]`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.IssueComments.ListInRepo(ctx, repo, &ListRepoCommentsQuery{Sort: CommentsByUpdated})
			},
			wantPath: "/repos/acme/widgets/issues/comments", wantQuery: "sort=updated",
		},
		{
			name: "given id, then gets comment", method: http.MethodGet, pattern: "/repos/{owner}/{repo}/issues/comments/{id}", reply: `{"id":5}`,
			call:     func(ctx context.Context, c *Client) (any, error) { return c.IssueComments.Get(ctx, repo, 5) },
			wantPath: "/repos/acme/widgets/issues/comments/5",
		},
		{
			name: "given body, then POST comment", method: http.MethodPost, pattern: "/repos/{owner}/{repo}/issues/{number}/comments", reply: `{"id":6}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.IssueComments.Create(ctx, repo, 3, CreateIssueComment{Body: "thanks"})
			},
			wantPath: "/repos/acme/widgets/issues/3/comments", wantBody: `{"body":"thanks"}`,
		},
		{
			name: "given edit, then PATCH comment", method: http.MethodPatch, pattern: "/repos/{owner}/{repo}/issues/comments/{id}", reply: `{"id":6}`,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.IssueComments.Edit(ctx, repo, 6, EditComment{Body: "edited"})
			},
			wantPath: "/repos/acme/widgets/issues/comments/6", wantBody: `{"body":"edited"}`,
		},
	})
}

func TestServices_NotImplemented(t *testing.T) {
	mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, `{}`)
	client := New(httpclient.New(httpclient.WithMockTransport(mock)))
	ctx := context.Background()
	repo := Repo("acme", "widgets")
	ref := PR("acme", "widgets", 21)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "given repo delete, then not implemented", call: func() error { return client.Repos.Delete(ctx, repo) }},
		{name: "given review comment delete, then not implemented", call: func() error { return client.CommitComments.Delete(ctx, repo, 1) }},
		{name: "given issue comment delete, then not implemented", call: func() error { return client.IssueComments.Delete(ctx, repo, 1) }},
		{name: "given merge check, then not implemented", call: func() error { _, err := client.PullRequests.IsMerged(ctx, ref); return err }},
		{name: "given merge, then not implemented", call: func() error { _, err := client.PullRequests.Merge(ctx, ref, MergeRequest{}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, ErrNotImplemented)
			assert.Equal(t, KindNotImplemented, KindOf(err))
		})
	}
	assert.Zero(t, mock.RequestCount())
}

func TestServices_ErrorReply(t *testing.T) {
	srv := githubtest.New(t).HandleFunc(http.MethodPost, "/repos/{owner}/{repo}/pulls",
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"Validation Failed","errors":[{"resource":"PullRequest","field":"base","code":"invalid"}],"repo":"`+
				chi.URLParam(r, "repo")+`"}`)
		})
	client := newTestClient(t, srv)

	_, err := client.PullRequests.Create(context.Background(), Repo("acme", "widgets"), CreatePullRequest{Title: "t", Head: "h", Base: "nope"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.NotNil(t, apiErr.API)
	require.Len(t, apiErr.API.Errors, 1)
	assert.Equal(t, "base", apiErr.API.Errors[0].Field)
	assert.Contains(t, err.Error(), "Validation Failed")
}

func TestServices_ConnectionFailure(t *testing.T) {
	// Nothing listens on port 1.
	client := NewFromHTTP(nil, WithBaseURL("http://127.0.0.1:1"))
	_, err := client.IssueComments.Get(context.Background(), Repo("acme", "widgets"), 1)

	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, httpclient.IsNetworkError(err))
}

func TestClient_Locator(t *testing.T) {
	c := New(httpclient.New(), WithBaseURL("https://ghe.local/api/v3/"))
	assert.Equal(t, "https://ghe.local/api/v3", c.Locator().Base())
	assert.Equal(t, DefaultBaseURL, New(httpclient.New()).Locator().Base())
}
