package gitapi

import (
	"context"
	"time"

	"github.com/kroma-labs/catalyst-go/httpclient"
)

// RepoInfo is a repository document.
type RepoInfo struct {
	ID               int64            `json:"id"`
	NodeID           string           `json:"node_id,omitempty"`
	Owner            User             `json:"owner"`
	Name             string           `json:"name"`
	FullName         string           `json:"full_name"`
	Description      *string          `json:"description"`
	Private          bool             `json:"private"`
	Fork             bool             `json:"fork"`
	Archived         bool             `json:"archived,omitempty"`
	URL              string           `json:"url"`
	HTMLURL          string           `json:"html_url"`
	CloneURL         string           `json:"clone_url"`
	GitURL           string           `json:"git_url"`
	SSHURL           string           `json:"ssh_url"`
	SVNURL           string           `json:"svn_url"`
	MirrorURL        *string          `json:"mirror_url"`
	Homepage         *string          `json:"homepage"`
	Language         *string          `json:"language"`
	ForksCount       int              `json:"forks_count"`
	StargazersCount  int              `json:"stargazers_count"`
	WatchersCount    int              `json:"watchers_count"`
	SubscribersCount *int             `json:"subscribers_count,omitempty"`
	Size             int              `json:"size"`
	DefaultBranch    string           `json:"default_branch"`
	OpenIssuesCount  int              `json:"open_issues_count"`
	HasIssues        bool             `json:"has_issues"`
	HasWiki          bool             `json:"has_wiki"`
	HasPages         bool             `json:"has_pages"`
	HasDownloads     bool             `json:"has_downloads"`
	PushedAt         *time.Time       `json:"pushed_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Permissions      *RepoPermissions `json:"permissions,omitempty"`
	Organization     *User            `json:"organization,omitempty"`
	Parent           *RepoInfo        `json:"parent,omitempty"`
	Source           *RepoInfo        `json:"source,omitempty"`
}

// RepoPermissions are the caller's rights on a repository.
type RepoPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

// Team is a team with access to a repository.
type Team struct {
	ID              int64  `json:"id"`
	URL             string `json:"url"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Privacy         string `json:"privacy"`
	Permission      string `json:"permission"`
	MembersURL      string `json:"members_url"`
	RepositoriesURL string `json:"repositories_url"`
}

// Tag is a lightweight listing of a tag.
type Tag struct {
	Name       string   `json:"name"`
	Commit     TreeNode `json:"commit"`
	ZipballURL string   `json:"zipball_url"`
	TarballURL string   `json:"tarball_url"`
}

// Branch is a branch as listed.
type Branch struct {
	Name      string   `json:"name"`
	Commit    TreeNode `json:"commit"`
	Protected bool     `json:"protected"`
}

// FullBranch is a single branch with its head commit expanded.
type FullBranch struct {
	Name      string `json:"name"`
	Commit    Commit `json:"commit"`
	Protected bool   `json:"protected"`
}

// Languages maps language name to bytes of code.
type Languages map[string]int64

// RepoQuery filters the authenticated user's repositories.
type RepoQuery struct {
	Visibility RepoVisibility `url:"visibility,omitempty"`
	// Affiliation is a comma-separated list of owner, collaborator and
	// organization_member.
	Affiliation string        `url:"affiliation,omitempty"`
	Sort        RepoSort      `url:"sort,omitempty"`
	Direction   SortDirection `url:"direction,omitempty"`
}

// ContributorsQuery filters repository contributors.
type ContributorsQuery struct {
	// Anon includes anonymous contributors.
	Anon bool `url:"anon,omitempty"`
}

type publicReposQuery struct {
	Since int64 `url:"since,omitempty"`
}

// CreateRepository is the payload for creating a repository.
type CreateRepository struct {
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Homepage          *string `json:"homepage,omitempty"`
	Private           *bool   `json:"private,omitempty"`
	HasIssues         *bool   `json:"has_issues,omitempty"`
	HasWiki           *bool   `json:"has_wiki,omitempty"`
	HasDownloads      *bool   `json:"has_downloads,omitempty"`
	TeamID            *int64  `json:"team_id,omitempty"`
	AutoInit          *bool   `json:"auto_init,omitempty"`
	GitignoreTemplate *string `json:"gitignore_template,omitempty"`
	LicenseTemplate   *string `json:"license_template,omitempty"`
}

// EditRepository is the payload for editing a repository. Nil fields are
// left unchanged.
type EditRepository struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Homepage      *string `json:"homepage,omitempty"`
	Private       *bool   `json:"private,omitempty"`
	HasIssues     *bool   `json:"has_issues,omitempty"`
	HasWiki       *bool   `json:"has_wiki,omitempty"`
	HasDownloads  *bool   `json:"has_downloads,omitempty"`
	DefaultBranch *string `json:"default_branch,omitempty"`
}

// RepoService covers the repository endpoints.
type RepoService service

// ListOwn lists repositories the authenticated user can access.
func (s *RepoService) ListOwn(ctx context.Context, q *RepoQuery) ([]RepoInfo, error) {
	u, err := WithQuery(s.loc.OwnRepos(), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]RepoInfo](ctx, s.exec, httpclient.Get, u)
}

// ListForUser lists public repositories of user.
func (s *RepoService) ListForUser(ctx context.Context, user string) ([]RepoInfo, error) {
	return SendWithoutPayload[[]RepoInfo](ctx, s.exec, httpclient.Get, s.loc.UserRepos(user))
}

// ListForOrg lists repositories of org.
func (s *RepoService) ListForOrg(ctx context.Context, org string) ([]RepoInfo, error) {
	return SendWithoutPayload[[]RepoInfo](ctx, s.exec, httpclient.Get, s.loc.OrgRepos(org))
}

// ListPublic lists all public repositories with an ID greater than since.
func (s *RepoService) ListPublic(ctx context.Context, since int64) ([]RepoInfo, error) {
	u, err := WithQuery(s.loc.AllRepos(), publicReposQuery{Since: since})
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]RepoInfo](ctx, s.exec, httpclient.Get, u)
}

// Create creates a repository for the authenticated user.
func (s *RepoService) Create(ctx context.Context, details CreateRepository) (RepoInfo, error) {
	return SendWithPayload[RepoInfo](ctx, s.exec, httpclient.Post, s.loc.OwnRepos(), details)
}

// CreateForOrg creates a repository in org.
func (s *RepoService) CreateForOrg(ctx context.Context, org string, details CreateRepository) (RepoInfo, error) {
	return SendWithPayload[RepoInfo](ctx, s.exec, httpclient.Post, s.loc.OrgRepos(org), details)
}

func (s *RepoService) Get(ctx context.Context, repo Repository) (RepoInfo, error) {
	return SendWithoutPayload[RepoInfo](ctx, s.exec, httpclient.Get, s.loc.Repo(repo))
}

func (s *RepoService) Edit(ctx context.Context, repo Repository, details EditRepository) (RepoInfo, error) {
	return SendWithPayload[RepoInfo](ctx, s.exec, httpclient.Patch, s.loc.Repo(repo), details)
}

func (s *RepoService) ListContributors(ctx context.Context, repo Repository, q *ContributorsQuery) ([]User, error) {
	u, err := WithQuery(s.loc.Contributors(repo), q)
	if err != nil {
		return nil, err
	}
	return SendWithoutPayload[[]User](ctx, s.exec, httpclient.Get, u)
}

func (s *RepoService) ListLanguages(ctx context.Context, repo Repository) (Languages, error) {
	return SendWithoutPayload[Languages](ctx, s.exec, httpclient.Get, s.loc.Languages(repo))
}

func (s *RepoService) ListTeams(ctx context.Context, repo Repository) ([]Team, error) {
	return SendWithoutPayload[[]Team](ctx, s.exec, httpclient.Get, s.loc.Teams(repo))
}

func (s *RepoService) ListTags(ctx context.Context, repo Repository) ([]Tag, error) {
	return SendWithoutPayload[[]Tag](ctx, s.exec, httpclient.Get, s.loc.Tags(repo))
}

func (s *RepoService) ListBranches(ctx context.Context, repo Repository) ([]Branch, error) {
	return SendWithoutPayload[[]Branch](ctx, s.exec, httpclient.Get, s.loc.Branches(repo))
}

func (s *RepoService) GetBranch(ctx context.Context, repo Repository, branch string) (FullBranch, error) {
	return SendWithoutPayload[FullBranch](ctx, s.exec, httpclient.Get, s.loc.Branch(repo, branch))
}

// Delete is not implemented and always fails with KindNotImplemented.
func (s *RepoService) Delete(_ context.Context, _ Repository) error {
	return notImplemented("repos.delete")
}
